package docs

import (
	"bytes"
	"strings"
	"testing"
)

func sampleAPI() *API {
	diskID := Leaf("DiskID", "A disk ID in the range 0..4095.")
	name := Leaf("PlacementGroupName", "A placement group name.")
	pg := Record("PlacementGroup", "", []Attr{
		{Name: "name", Node: name},
		{Name: "disks", Node: List("list", "", diskID), Desc: "The member disks."},
		{Name: "id", Node: Optional("internal", "", Leaf("int", "An integer."))},
	})

	api := NewAPI("  StorPool API  ", "Intro.\n\n  ```\n  curl <host>\n  ```\n")
	s := api.Section("Placement Groups", "Groups of disks.")
	s.Add(&Method{
		Title:   "Describe a <group>",
		Verb:    "GET",
		Query:   "PlacementGroupDescribe/{placementGroupName}",
		Path:    "/ctrl/1.0/PlacementGroupDescribe/{placementGroupName}",
		Args:    []Attr{{Name: "placementGroupName", Node: name}},
		Returns: pg,
	})
	s.Add(&Method{
		Verb:    "POST",
		Query:   "DiskEject/{diskId}",
		Path:    "/ctrl/1.0/DiskEject/{diskId}",
		Args:    []Attr{{Name: "diskId", Node: diskID}},
		JSON:    Map("map", "Disks by id.", diskID, name),
		Returns: Leaf("ApiOk", "Success."),
	})
	return api
}

func TestMethodAndSectionIDs(t *testing.T) {
	api := sampleAPI()
	if got := api.Methods()[0].ID(); got != "PlacementGroupDescribe" {
		t.Fatalf("ID = %q", got)
	}
	if got := api.Sections[0].ID(); got != "Placement-Groups" {
		t.Fatalf("section ID = %q", got)
	}
	if api.Title != "StorPool API" {
		t.Fatalf("title not trimmed: %q", api.Title)
	}
}

func TestTypes_DedupedAndSorted(t *testing.T) {
	var names []string
	for _, n := range sampleAPI().Types() {
		names = append(names, n.Name)
	}
	want := "ApiOk,DiskID,PlacementGroupName,int"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("types = %s, want %s", got, want)
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, sampleAPI()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>StorPool API</title>",
		`<h2 id="Placement-Groups">Placement Groups</h2>`,
		"Describe a &lt;group&gt;",
		"XXX Missing title.",
		"GET /ctrl/1.0/PlacementGroupDescribe/{placementGroupName} HTTP/1.0",
		"<pre class=\"code\"><code>curl &lt;host&gt;\n</code></pre>",
		`<tr id="DiskID">`,
		"<em>Either no JSON or {}</em>",
		"<li>Key type: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	// attributes are listed by name
	if strings.Index(out, ">disks: ") > strings.Index(out, ">name: ") {
		t.Error("attributes not sorted")
	}
}

func TestSplitRecordDoc(t *testing.T) {
	desc, attrs := SplitRecordDoc(`
		Describes a volume.
		size: The size in bytes.
		see: http://example.com
		bad key: ignored
	`)
	if desc != "Describes a volume.\nsee: http://example.com\nbad key: ignored" {
		t.Fatalf("desc = %q", desc)
	}
	if len(attrs) != 1 || attrs["size"] != "The size in bytes." {
		t.Fatalf("attrs = %v", attrs)
	}
}

func TestWalk_VisitsOnce(t *testing.T) {
	leaf := Leaf("x", "")
	root := Either("either", "", leaf, List("list", "", leaf))
	n := 0
	Walk(root, func(*Node) { n++ })
	if n != 3 {
		t.Fatalf("visited %d nodes", n)
	}
}
