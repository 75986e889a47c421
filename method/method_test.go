package method_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/dsl"
	"github.com/storpool/spschema/method"
	"github.com/storpool/spschema/wire"
)

var pgName = method.NewArg("placementGroupName", dsl.Name("PlacementGroupName", `[A-Za-z0-9_\-.:]+$`, 128, "list"))

var pgUpdateDesc = dsl.Record("PlacementGroupUpdateDesc").
	Field("addDisks", dsl.WithDefault(dsl.SetOf(dsl.IntRange("DiskId", 0, 4095)), dsl.NewSet()), "").
	MustBuild()

var pgUpdate = method.POST("PlacementGroupUpdate/{placementGroupName}", pgName).
	JSON(pgUpdateDesc).
	Doc("Create and/or update a placement group", "").
	Compile("placementGroupUpdate")

type recorder struct {
	reqs     []method.Request
	reply    any
	err      error
	partials int
}

func (r *recorder) Call(_ context.Context, req method.Request) (any, error) {
	r.reqs = append(r.reqs, req)
	return r.reply, r.err
}

func (r *recorder) ObservePartial(method.Request, error) { r.partials++ }

func okReply() map[string]any { return map[string]any{"ok": true, "generation": 7} }

func TestInvoke_EndToEnd(t *testing.T) {
	tr := &recorder{reply: okReply()}
	out, err := pgUpdate.Invoke(context.Background(), tr, method.Call{
		Args: []any{"hdd"},
		JSON: map[string]any{"addDisks": []any{1, 2, 3}},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(tr.reqs) != 1 {
		t.Fatalf("expected one transport call, got %d", len(tr.reqs))
	}
	req := tr.reqs[0]
	if req.Verb != "POST" || req.Query != "PlacementGroupUpdate/hdd" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Path() != "/ctrl/1.0/PlacementGroupUpdate/hdd" {
		t.Fatalf("unexpected path %q", req.Path())
	}
	body, _ := wire.Encode(req.Body)
	v, _ := wire.Decode(body)
	disks, err := dsl.SetOf(dsl.Int()).Validate(v.(map[string]any)["addDisks"])
	if err != nil || !disks.(dsl.Set).Equal(dsl.NewSet(1, 2, 3)) {
		t.Fatalf("unexpected body %s", body)
	}
	if !out.(*dsl.Object).Is(method.ApiOk) {
		t.Fatalf("POST must default to ApiOk, got %v", out)
	}
}

func TestInvoke_ArgumentsFailBeforeTransport(t *testing.T) {
	tr := &recorder{reply: okReply()}
	_, err := pgUpdate.Invoke(context.Background(), tr, method.Call{Args: []any{"list"}, JSON: map[string]any{}})
	ve, ok := spschema.AsValidation(err)
	if !ok || ve.Code != spschema.CodeReservedName {
		t.Fatalf("expected reserved_name, got %v", err)
	}
	if !strings.HasPrefix(ve.Message, "placementGroupUpdate: placementGroupName: ") {
		t.Fatalf("unexpected message %q", ve.Message)
	}
	if len(tr.reqs) != 0 {
		t.Fatalf("transport must not be called")
	}

	_, err = pgUpdate.Invoke(context.Background(), tr, method.Call{Args: []any{"hdd"}, JSON: map[string]any{"addDisks": []any{9999}}})
	if iss, _ := spschema.AsIssues(err); len(iss) != 1 || iss[0].Path != "/json/addDisks/0" {
		t.Fatalf("unexpected body issues %v", iss)
	}

	_, err = pgUpdate.Invoke(context.Background(), tr, method.Call{})
	if !errors.Is(err, method.ErrArgCount) {
		t.Fatalf("expected ErrArgCount, got %v", err)
	}
	if len(tr.reqs) != 0 {
		t.Fatalf("transport must not be called")
	}
}

func TestInvoke_PartialReplyIsReturned(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())
	tr := &recorder{reply: map[string]any{"ok": true, "generation": "not a number"}}
	out, err := pgUpdate.Call(ctx, tr, "hdd", map[string]any{})
	if err != nil {
		t.Fatalf("partial decode must not fail, got %v", err)
	}
	obj := out.(*dsl.Object)
	if obj.Value("ok") != true || obj.Has("generation") {
		t.Fatalf("unexpected partial %v", obj)
	}
	if !strings.Contains(logs.String(), "partial response decode") || !strings.Contains(logs.String(), `"method":"placementGroupUpdate"`) {
		t.Fatalf("expected a warning, got %q", logs.String())
	}
	if tr.partials != 1 {
		t.Fatalf("observer must be notified")
	}
}

func TestInvoke_DecodeWithoutPartialFails(t *testing.T) {
	tr := &recorder{reply: "garbage"}
	if _, err := pgUpdate.Call(context.Background(), tr, "hdd", map[string]any{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestInvoke_TransportErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	tr := &recorder{err: boom}
	if _, err := pgUpdate.Call(context.Background(), tr, "hdd", map[string]any{}); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRequest_EscapesArgumentsAndRejectsUnexpectedBody(t *testing.T) {
	describe := method.GET("VolumeDescribe/{volumeName}", method.NewArg("volumeName", dsl.String())).
		Returns(dsl.Any()).
		MultiCluster().
		Compile("volumeDescribe")
	req, err := describe.Request(method.Call{Args: []any{"a/b c"}, ClusterName: "remote"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Path() != "/ctrl/1.0/RemoteCommand/remote/MultiCluster/VolumeDescribe/a%2Fb%20c" {
		t.Fatalf("unexpected path %q", req.Path())
	}
	if _, err := describe.Request(method.Call{Args: []any{"v"}, JSON: 1}); !errors.Is(err, method.ErrUnexpectedJSON) {
		t.Fatalf("expected ErrUnexpectedJSON, got %v", err)
	}
}

func TestCompile_DeclarationErrors(t *testing.T) {
	cases := map[string]func(){
		"GET without return": func() { method.GET("DisksList").Compile("disksList") },
		"missing placeholder": func() {
			method.POST("DiskEject", method.NewArg("diskId", dsl.Int())).Compile("diskEject")
		},
		"misnamed placeholder": func() {
			method.POST("DiskEject/{id}", method.NewArg("diskId", dsl.Int())).Compile("diskEject")
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, spschema.ErrDeclaration) {
					t.Fatalf("expected declaration panic, got %v", err)
				}
			}()
			fn()
		})
	}
}

func TestFormatPath(t *testing.T) {
	if p := method.FormatPath("VolumesList", false, ""); p != "/ctrl/1.0/VolumesList" {
		t.Fatalf("got %q", p)
	}
	if p := method.FormatPath("VolumesList", true, ""); p != "/ctrl/1.0/MultiCluster/VolumesList" {
		t.Fatalf("got %q", p)
	}
}

func TestRegistry(t *testing.T) {
	r := method.NewRegistry()
	r.Add(pgUpdate)
	list := r.Add(method.GET("VolumesList").Returns(dsl.Any()).MultiCluster().Compile("volumesList"))
	if r.Len() != 2 {
		t.Fatalf("unexpected len %d", r.Len())
	}
	if f, ok := r.Lookup("post", "PlacementGroupUpdate/hdd"); !ok || f != pgUpdate {
		t.Fatalf("lookup by query failed")
	}
	if f, ok := r.Lookup("GET", "MultiCluster/VolumesList"); !ok || f != list {
		t.Fatalf("multicluster prefix must be ignored")
	}
	if _, ok := r.Lookup("GET", "PlacementGroupUpdate"); ok {
		t.Fatalf("verb must match")
	}
	if f, _ := r.Get("volumesList"); f != list {
		t.Fatalf("lookup by name failed")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate names must panic")
		}
	}()
	r.Add(pgUpdate)
}
