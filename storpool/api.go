package storpool

import (
	"context"
	"errors"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	g "github.com/storpool/spschema/dsl"
	"github.com/storpool/spschema/method"
)

// ErrUnknownMethod is wrapped by API.Call for names that are not declared.
var ErrUnknownMethod = errors.New("unknown method")

var registry, reference = declare()

// Registry returns every declared method.
func Registry() *method.Registry { return registry }

// Reference returns the documentation tree of the declared methods.
func Reference() *docs.API { return reference }

// API binds the declared methods to a transport. It is safe for
// concurrent use when the transport is.
type API struct {
	tr method.Transport
}

// New returns an API sending requests through tr, usually a
// *client.Client.
func New(tr method.Transport) *API { return &API{tr: tr} }

// Call invokes the method named name, e.g. "volumeDescribe".
func (a *API) Call(ctx context.Context, name string, call method.Call) (any, error) {
	f, ok := registry.Get(name)
	if !ok {
		return nil, &spschema.UsageError{Op: "call", Name: name, Err: ErrUnknownMethod}
	}
	return f.Invoke(ctx, a.tr, call)
}

// Func returns the method named name.
func (a *API) Func(name string) (*method.Func, bool) { return registry.Get(name) }

func (a *API) Methods() *method.Registry { return registry }
func (a *API) Doc() *docs.API            { return reference }

type declarer struct {
	reg *method.Registry
	api *docs.API
	sec *docs.Section
}

func (d *declarer) section(name, desc string) { d.sec = d.api.Section(name, desc) }

func (d *declarer) add(name string, decl *method.Decl) {
	f := d.reg.Add(decl.Compile(name))
	d.sec.Add(f.Doc())
}

func arg(name string, t g.Typed) method.Arg { return method.NewArg(name, t) }

var (
	argServerID     = arg("serverId", ServerID)
	argClientID     = arg("clientId", ClientID)
	argDiskID       = arg("diskId", DiskID)
	argVolume       = arg("volumeName", VolumeName)
	argSnapshot     = arg("snapshotName", SnapshotName)
	argGlobalID     = arg("globalVolumeId", GlobalVolumeID)
	argPlacement    = arg("placementGroupName", PlacementGroupName)
	argTemplateName = arg("templateName", VolumeTemplateName)
)

const generalDoc = `
The StorPool API can be used with any tool that sends HTTP GET and POST
requests. Every request carries the Authorization header and, when the
call takes one, a JSON body.

Each call below lists the HTTP request and response with an example in
the raw form the management service expects.

` + "```" + `
curl -H "Authorization: Storpool v1:1556129910218014736" 192.168.42.208:81/ctrl/1.0/DisksList
` + "```" + `

` + "```" + `
curl -d '{"addDisks":["1"]}' -H "Authorization: Storpool v1:1556129910218014736" 192.168.42.208:81/ctrl/1.0/PlacementGroupUpdate/hdd
` + "```" + `

From Go, build a client from the node configuration and call a method
by name:

` + "```" + `
sp, _ := config.Load(ctx, config.Options{})
cfg, _ := config.FromStorPool(sp.WithEnvOverrides(nil), logger)
api := storpool.New(client.New(cfg))
peers, err := api.Call(ctx, "peersList", method.Call{})
` + "```" + `

The spreq tool does the same from a shell: spreq call NetworkPeersList
(add -P for POST queries).

GET calls take no body except where noted; the body is then passed as
the json query parameter. Replies are always JSON.

Calls marked MultiCluster reach volumes and snapshots of a connected
cluster. They use a "MultiCluster/" path component when the client is
configured with MultiCluster set. A request may also be forwarded to the
API of another cluster by adding "RemoteCommand/<clusterName>/" right
after the version prefix; set Call.ClusterName for that:

` + "```" + `
curl -H "Authorization: Storpool v1:1556129910218014736" 192.168.42.208:81/ctrl/1.0/RemoteCommand/backup/DisksList
` + "```" + `
`

// declare builds the method table. Sections appear in the reference in
// the order they are opened here.
func declare() (*method.Registry, *docs.API) {
	d := &declarer{
		reg: method.NewRegistry(),
		api: docs.NewAPI("StorPool API Reference",
			"This reference describes the StorPool API version 19.01 and the supported calls."),
	}
	GET, POST := method.GET, method.POST

	d.section("General", generalDoc)

	d.section("Peers", "")
	d.add("peersList", GET("NetworkPeersList").Returns(mapOf(PeerID, PeerDesc)).
		Doc("List the network peers", "List the nodes running the StorPool beacon with their networks and MAC addresses."))

	d.section("Tasks", "")
	d.add("tasksList", GET("TasksList").Returns(listOf(Task)).
		Doc("List tasks", "List the active recovery tasks. Nothing is returned unless a relocation is in progress."))

	d.section("Services", "")
	d.add("servicesList", GET("ServicesList").Returns(ClusterStatus).
		Doc("List all StorPool services", "List every service in the cluster: servers, clients, management and bridges. Fails if the cluster is not operational."))
	d.add("serversListBlocked", GET("ServersListBlocked").Returns(ClusterStatus).
		Doc("List all blocked StorPool servers", "List the active servers even before the cluster is operational, with the missing disks it waits for."))

	d.section("Servers", "")
	d.add("serversList", GET("ServersList").Returns(ClusterStatus).
		Doc("List all StorPool servers", "Like ServicesList without the clients. Fails if the cluster is not operational."))
	d.add("serverDisksList", GET("ServerDisksList/{serverId}", argServerID).Returns(mapOf(DiskID, DiskSummary)).
		Doc("List all disks on a server", "Return detailed information about each disk on the server."))
	d.add("serverDiskDescribe", GET("ServerDiskDescribe/{serverId}/{diskId}", argServerID, argDiskID).Returns(Disk).
		Doc("Describe a disk on a server", "Return detailed information about a disk on the server and the objects on it."))

	d.section("Clients", "")
	d.add("clientsConfigDump", GET("ClientsConfigDump").Returns(listOf(ClientConfigStatus)).
		Doc("Get the current status of all the clients", "Return the generation and update status of each client."))
	d.add("clientConfigWait", GET("ClientConfigWait/{clientId}", argClientID).Returns(listOf(ClientConfigStatus)).
		Doc("Wait until a client updates to the current configuration", "Like ClientsConfigDump, but block until the client reaches the cluster generation current at the time of the request."))
	d.add("clientActiveRequests", GET("ClientActiveRequests/{clientId}", argClientID).Returns(ClientActiveRequests).
		Doc("List all the active requests on a client", "List the requests the client is processing."))

	d.section("Disks", "")
	d.add("disksList", GET("DisksList").Returns(mapOf(DiskID, DiskSummary)).
		Doc("List all disks", ""))
	d.add("diskDescribe", GET("DiskDescribe/{diskId}", argDiskID).Returns(Disk).
		Doc("Describe a disk", "Return the disk with detailed information about the objects on it."))
	d.add("diskInfo", GET("DiskGetInfo/{diskId}", argDiskID).Returns(DiskInfo).
		Doc("Get disk info", "Return the disk with the volumes stored on it."))
	d.add("diskEject", POST("DiskEject/{diskId}", argDiskID).
		Doc("Eject a disk", "Stop operations on the disk even if it is not empty."))
	d.add("diskForget", POST("DiskForget/{diskId}", argDiskID).
		Doc("Forget a disk", "Remove the disk from every placement group and volume it is used in."))
	d.add("diskIgnore", POST("DiskIgnore/{diskId}", argDiskID).
		Doc("Ignore a disk", "Try to boot the cluster without this disk."))
	d.add("diskSoftEject", POST("DiskSoftEject/{diskId}", argDiskID).
		Doc("Soft-eject a disk", "Stop writes to the disk and relocate its data to other disks."))
	d.add("diskSoftEjectPause", POST("DiskSoftEjectPause/{diskId}", argDiskID).
		Doc("Pause a disk's soft-eject operation", "Pause the relocation tasks of the disk, e.g. under heavy load."))
	d.add("diskSoftEjectCancel", POST("DiskSoftEjectCancel/{diskId}", argDiskID).
		Doc("Cancel a disk's soft-eject operation", "Stop the relocation tasks and mark the disk usable again. Data is moved back to it afterwards."))
	d.add("diskSetDesc", POST("DiskSetDescription/{diskId}", argDiskID).JSON(DiskDescUpdate).
		Doc("Set a disk's description", ""))
	d.add("diskActiveRequests", GET("DiskActiveRequests/{diskId}", argDiskID).Returns(DiskActiveRequests).
		Doc("List all the active requests on a disk", "List the requests the disk is processing."))
	d.add("diskScrubStart", POST("DiskScrubStart/{diskId}", argDiskID).Doc("Start scrubbing process", ""))
	d.add("diskScrubPause", POST("DiskScrubPause/{diskId}", argDiskID).Doc("Pause scrubbing process", ""))
	d.add("diskScrubContinue", POST("DiskScrubContinue/{diskId}", argDiskID).Doc("Continue paused scrubbing process", ""))
	d.add("diskRetrim", POST("DiskRetrim/{diskId}", argDiskID).Doc("Retrim disk", ""))

	d.section("Volumes", "")
	d.add("volumesList", GET("VolumesList").Returns(listOf(VolumeSummary)).MultiCluster().
		Doc("List all volumes", "Return the configuration of every volume."))
	d.add("volumesStatus", GET("VolumesGetStatus").Returns(mapOf(VolumeOrSnapshot, VolumeStatus)).MultiCluster().
		Doc("Get volume and snapshot status", "Return the status of every volume and snapshot."))
	d.add("volumesSpace", GET("VolumesSpace").Returns(listOf(VolumeSpace)).MultiCluster().
		Doc("List total used space by each volume", "List the estimated virtual space used by each volume."))
	d.add("volumeList", GET("Volume/{volumeName}", argVolume).Returns(listOf(VolumeSummary)).MultiCluster().
		Doc("List a single volume", "Like VolumesList for one volume."))
	d.add("volumeDescribe", GET("VolumeDescribe/{volumeName}", argVolume).Returns(Volume).MultiCluster().
		Doc("Describe a volume", "Return how the data of the volume is distributed on the disks."))
	d.add("volumeInfo", GET("VolumeGetInfo/{volumeName}", argVolume).Returns(VolumeInfo).MultiCluster().
		Doc("Get volume info", "Return a summary of how the data of the volume is distributed on the disks."))
	d.add("volumeListSnapshots", GET("VolumeListSnapshots/{volumeName}", argVolume).Returns(listOf(SnapshotSummary)).
		Doc("List the parent snapshots of a volume", "List the parent snapshots of a volume in the format of VolumesList."))
	d.add("volumeCreate", POST("VolumeCreate").JSON(VolumeCreateDesc).Returns(ApiOkVolumeCreate).MultiCluster().
		Doc("Create a new volume", ""))
	d.add("volumeUpdate", POST("VolumeUpdate/{volumeName}", argVolume).JSON(VolumeUpdateDesc).MultiCluster().
		Doc("Update a volume", "Change the configuration of an existing volume."))
	d.add("volumeFreeze", POST("VolumeFreeze/{volumeName}", argVolume).JSON(maybe(VolumeFreezeDesc)).MultiCluster().
		Doc("Freeze a volume", "Convert the volume to a snapshot."))
	d.add("volumeRebase", POST("VolumeRebase/{volumeName}", argVolume).JSON(VolumeRebaseDesc).
		Doc("Rebase a volume", "Change the parent of the volume to one higher in the hierarchy, or to no parent."))
	d.add("volumeAbandonDisk", POST("VolumeAbandonDisk/{volumeName}", argVolume).JSON(AbandonDiskDesc).
		Doc("Abandon disk", ""))
	d.add("volumeDelete", POST("VolumeDelete/{volumeName}", argVolume).MultiCluster().
		Doc("Delete a volume", ""))
	d.add("volumeBackup", POST("VolumeBackup").JSON(VolumeBackupDesc).Returns(ApiOkVolumeBackup).MultiCluster().
		Doc("Backup a volume to a remote location", ""))
	d.add("volumesGroupBackup", POST("VolumesGroupBackup").JSON(VolumesGroupBackupDesc).Returns(ApiOkVolumesGroupBackup).MultiCluster().
		Doc("Backup a group of volumes to a remote location", ""))

	d.section("Snapshots", `
Snapshots support the volume operations that do not write. They cannot
be modified and are the base of copy-on-write volumes.
`)
	d.add("snapshotsList", GET("SnapshotsList").Returns(listOf(SnapshotSummary)).MultiCluster().
		Doc("List all snapshots", "List every snapshot in the format of VolumesList."))
	d.add("snapshotsSpace", GET("SnapshotsSpace").Returns(listOf(SnapshotSpace)).MultiCluster().
		Doc("List snapshots space estimations", "List the estimated virtual space used by each snapshot."))
	d.add("snapshotList", GET("Snapshot/{snapshotName}", argSnapshot).Returns(listOf(SnapshotSummary)).MultiCluster().
		Doc("List a single snapshot", "Like SnapshotsList for one snapshot."))
	d.add("snapshotDescribe", GET("SnapshotDescribe/{snapshotName}", argSnapshot).Returns(Snapshot).MultiCluster().
		Doc("Describe a snapshot", "Return how the data of the snapshot is distributed on the disks."))
	d.add("snapshotInfo", GET("SnapshotGetInfo/{snapshotName}", argSnapshot).Returns(SnapshotInfo).MultiCluster().
		Doc("Get snapshot info", "Return a summary of how the data of the snapshot is distributed on the disks."))
	d.add("snapshotCreate", POST("VolumeSnapshot/{volumeName}", argVolume).JSON(VolumeSnapshotDesc).Returns(ApiOkSnapshotCreate).MultiCluster().
		Doc("Snapshot a volume", "Create a snapshot of the volume. The snapshot becomes the parent of the volume."))
	d.add("snapshotUpdate", POST("SnapshotUpdate/{snapshotName}", argSnapshot).JSON(SnapshotUpdateDesc).
		Doc("Update a snapshot", "Change the configuration of an existing snapshot."))
	d.add("snapshotRebase", POST("SnapshotRebase/{snapshotName}", argSnapshot).JSON(VolumeRebaseDesc).
		Doc("Rebase a snapshot", "Change the parent of the snapshot to one higher in the hierarchy, or to no parent."))
	d.add("snapshotAbandonDisk", POST("VolumeAbandonDisk/{snapshotName}", argSnapshot).JSON(AbandonDiskDesc).
		Doc("Abandon disk", ""))
	d.add("snapshotDelete", POST("SnapshotDelete/{snapshotName}", argSnapshot).MultiCluster().
		Doc("Delete a snapshot", ""))
	d.add("snapshotDeleteById", POST("SnapshotDeleteById/{globalVolumeId}", argGlobalID).
		Doc("Delete a snapshot by global id", ""))
	d.add("snapshotCreateGroup", POST("VolumesGroupSnapshot").JSON(GroupSnapshotsSpec).Returns(GroupSnapshotsResult).MultiCluster().
		Doc("Create consistent snapshots of a group of volumes", ""))
	d.add("snapshotFromRemote", POST("SnapshotFromRemote").JSON(SnapshotFromRemoteDesc).
		Doc("Copy a snapshot from a remote location", ""))
	d.add("snapshotExport", POST("SnapshotExport").JSON(SnapshotExportDesc).
		Doc("Allow a remote location to access a local snapshot", ""))
	d.add("snapshotUnexport", POST("SnapshotUnexport").JSON(SnapshotUnexportDesc).
		Doc("Revoke a remote location's access to a local snapshot", ""))
	d.add("exportsList", GET("ExportsList").Returns(ExportsList).
		Doc("List exported snapshots", ""))
	d.add("volumeExportsList", GET("VolumeExportsList").Returns(ExportsList).
		Doc("List exported volumes", ""))
	d.add("snapshotsRemoteList", GET("SnapshotsRemoteList").Returns(RemoteSnapshotsList).
		Doc("List the available remote snapshots", ""))
	d.add("volumesRemoteList", GET("VolumesRemoteList").Returns(RemoteVolumesList).
		Doc("List the available remote volumes", ""))
	d.add("snapshotsRemoteUnexport", POST("SnapshotsRemoteUnexport").JSON(SnapshotsRemoteUnexport).
		Doc("Instruct the remote location that we will no longer use those snapshots", ""))

	d.section("Attachments", "")
	d.add("attachmentsList", GET("AttachmentsList").Returns(listOf(AttachmentDesc)).MultiCluster().
		Doc("List all attachments", "List the volumes and snapshots attached to clients with the rights of each attachment."))
	d.add("volumesReassign", POST("VolumesReassign").JSON(listOf(Reassign)).MultiCluster().
		Doc("Reassign volumes and/or snapshots", "Attach, detach and change attachment rights in bulk."))
	d.add("volumesReassignWait", POST("VolumesReassignWait").JSON(VolumesReassignWaitDesc).MultiCluster().
		Doc("Reassign volumes and/or snapshots with confirmation from the clients", "Like VolumesReassign, and wait for the clients to catch up."))

	d.section("Placement Groups", "Placement groups select the disks a volume's data is stored on.")
	d.add("placementGroupsList", GET("PlacementGroupsList").Returns(mapOf(PlacementGroupName, PlacementGroup)).
		Doc("List all placement groups", ""))
	d.add("placementGroupDescribe", GET("PlacementGroupDescribe/{placementGroupName}", argPlacement).Returns(PlacementGroup).
		Doc("Describe a single placement group", "Like PlacementGroupsList for one group."))
	d.add("placementGroupUpdate", POST("PlacementGroupUpdate/{placementGroupName}", argPlacement).JSON(PlacementGroupUpdateDesc).
		Doc("Create and/or update a placement group", "A group that does not exist is created."))
	d.add("placementGroupDelete", POST("PlacementGroupDelete/{placementGroupName}", argPlacement).
		Doc("Delete a placement group", ""))
	d.add("faultSetsList", GET("FaultSetsList").Returns(mapOf(FaultSetName, FaultSet)).
		Doc("List all fault sets", ""))

	d.section("Volume Templates", "Templates are rules for creating many similar volumes.")
	d.add("volumeTemplatesList", GET("VolumeTemplatesList").Returns(listOf(VolumeTemplateDesc)).
		Doc("List all volume templates", ""))
	d.add("volumeTemplatesStatus", GET("VolumeTemplatesStatus").Returns(listOf(VolumeTemplateStatusDesc)).
		Doc("List the status of all volume templates", ""))
	d.add("volumeTemplateDescribe", GET("VolumeTemplateDescribe/{templateName}", argTemplateName).Returns(VolumeTemplateDesc).
		Doc("Describe a single volume template", "Like VolumeTemplatesList for one template."))
	d.add("volumeTemplateCreate", POST("VolumeTemplateCreate").JSON(VolumeTemplateCreateDesc).
		Doc("Create a volume template", ""))
	d.add("volumeTemplateUpdate", POST("VolumeTemplateUpdate/{templateName}", argTemplateName).JSON(VolumeTemplateUpdateDesc).
		Doc("Update a volume template", "Change the configuration of an existing template."))
	d.add("volumeTemplateDelete", POST("VolumeTemplateDelete/{templateName}", argTemplateName).
		Doc("Delete a volume template", ""))

	d.section("Volume Relocator", "The relocator moves data when needed, e.g. when disks are added or removed.")
	d.add("volumeRelocatorStatus", GET("VolumeRelocatorStatus").Returns(VolumeRelocatorStatus).
		Doc("Get the relocator's status", ""))
	d.add("volumeRelocatorDisks", GET("VolumeRelocatorDisksList").Returns(mapOf(DiskID, DiskTarget)).
		Doc("List total per disk relocation estimates", ""))
	d.add("volumeRelocatorVolumeDisks", GET("VolumeRelocatorVolumeDisks/{volumeName}", argVolume).Returns(mapOf(DiskID, DiskTarget)).
		Doc("List per disk relocation estimates for a given volume", ""))
	d.add("volumeRelocatorSnapshotDisks", GET("VolumeRelocatorSnapshotDisks/{snapshotName}", argSnapshot).Returns(mapOf(DiskID, DiskTarget)).
		Doc("List per disk relocation estimates for a given snapshot", ""))

	d.section("Balancer", "The balancer decides when it is a good time to move data.")
	d.add("volumeBalancerGetStatus", GET("VolumeBalancerStatus").Returns(VolumeBalancerStatus).
		Doc("Get the balancer's status", ""))
	d.add("volumeBalancerSetStatus", POST("VolumeBalancerStatus").JSON(VolumeBalancerCommand).
		Doc("Set the balancer's status", ""))
	d.add("volumeBalancerVolumesStatus", GET("VolumeBalancerVolumesStatus").Returns(listOf(VolumeBalancerVolumeStatus)).
		Doc("List balancer volume and snapshot status", "Show which volumes and snapshots the current balancer run reallocates."))
	d.add("volumeBalancerDisks", GET("VolumeBalancerDisksList").Returns(mapOf(DiskID, DiskTarget)).
		Doc("List total per disk rebalancing estimates", ""))
	d.add("volumeBalancerVolumeDisks", GET("VolumeBalancerVolumeDisks/{volumeName}", argVolume).Returns(mapOf(DiskID, DiskTarget)).
		Doc("List per disk rebalancing estimates for a given volume", ""))
	d.add("volumeBalancerSnapshotDisks", GET("VolumeBalancerSnapshotDisks/{snapshotName}", argSnapshot).Returns(mapOf(DiskID, DiskTarget)).
		Doc("List per disk rebalancing estimates for a given snapshot", ""))
	d.add("volumeBalancerVolumeDiskSets", GET("VolumeBalancerVolumeDiskSets/{volumeName}", argVolume).Returns(VolumeBalancerVolumeDiskSets).
		Doc("Get the disk sets computed by the balancer for a given volume", ""))
	d.add("volumeBalancerSnapshotDiskSets", GET("VolumeBalancerSnapshotDiskSets/{snapshotName}", argSnapshot).Returns(VolumeBalancerVolumeDiskSets).
		Doc("Get the disk sets computed by the balancer for a given snapshot", ""))
	d.add("volumeBalancerGroups", GET("VolumeBalancerGroups").Returns(listOf(VolumeBalancerAllocationGroup)).
		Doc("List balancer allocation groups", ""))

	d.section("iSCSI", "")
	d.add("iSCSIConfig", GET("iSCSIConfig").Returns(ISCSIConfig).
		Doc("Get the StorPool iSCSI configuration", ""))
	d.add("iSCSIConfigChange", POST("iSCSIConfig").JSON(ISCSIConfigChange).
		Doc("Modify the StorPool iSCSI configuration", "Every command object sets exactly one of its members."))
	d.add("iSCSISessionsInfo", GET("iSCSISessionsInfo").JSON(maybe(ISCSIControllersQuery)).Returns(ISCSIControllersReply).
		Doc("Query iSCSI controllers for active sessions", ""))
	d.add("iSCSInterfacesInfo", GET("iSCSInterfacesInfo").JSON(maybe(ISCSIControllersQuery)).Returns(ISCSIControllersReply).
		Doc("Query iSCSI controllers for interfaces state", ""))

	d.section("Remote", "")
	d.add("locationsList", GET("LocationsList").Returns(LocationsList).
		Doc("List the registered remote locations", ""))
	d.add("locationRemove", POST("LocationRemove").JSON(LocationRemoveDesc).
		Doc("Remove a remote location", ""))

	return d.reg, d.api
}
