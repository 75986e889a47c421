package storpool

import (
	g "github.com/storpool/spschema/dsl"
)

// Placement groups and fault sets

var PlacementGroup = g.Record("PlacementGroup").
	Field("id", internal(g.Int()), "").
	Field("name", PlacementGroupName, "").
	Field("disks", setOf(DiskID), "The IDs of the member disks.").
	MustBuild()

var PlacementGroupUpdateDesc = g.Record("PlacementGroupUpdateDesc").
	Doc(`
		rename: The new name of the placement group.
		addDisks: The IDs of the disks to add to the group.
		rmDisks: The IDs of the disks to remove from the group.
	`).
	Field("rename", maybe(PlacementGroupName), "").
	Field("addDisks", setOf(DiskID), "").
	Field("rmDisks", setOf(DiskID), "").
	MustBuild()

var FaultSet = g.Record("FaultSet").
	Field("name", FaultSetName, "").
	Field("servers", setOf(ServerID), "The servers in the fault set.").
	MustBuild()

// Volumes and snapshots

var VolumeLimits = g.Record("VolumeLimits").
	Doc(`
		bw: Bandwidth limit in KB.
		iops: IOPS limit.
	`).
	Field("bw", Bandwidth, "").
	Field("iops", IOPS, "").
	MustBuild()

const placementDocs = `
		placeAll: The placement group for all but the last replica.
		placeTail: The placement group for the last replica, the one reads are served from.
		placeHead: The placement group for the first replica.
`

var VolumeSummaryBase = g.Record("VolumeSummaryBase").
	Extends(VolumeLimits).
	Doc(placementDocs+`
		parentName: The parent snapshot.
		templateName: The template the settings are taken from.
		size: The size in bytes.
		replication: The number of copies kept.
		parentVolumeId: The ID of the parent snapshot.
		visibleVolumeId: The ID the volume or snapshot was created with.
		objectsCount: The number of objects the volume or snapshot consists of.
		creationTimestamp: The creation time as a UNIX timestamp.
		tags: Short name/value pairs stored with the volume.
	`).
	Field("id", internal(g.Long()), "").
	Field("parentName", g.EitherOr(SnapshotName, ""), "").
	Field("templateName", g.EitherOr(VolumeTemplateName, ""), "").
	Field("size", VolumeSize, "").
	Field("replication", VolumeReplication, "").
	Field("placeAll", PlacementGroupName, "").
	Field("placeTail", PlacementGroupName, "").
	Field("placeHead", PlacementGroupName, "").
	Field("parentVolumeId", internal(g.Long()), "").
	Field("originalParentVolumeId", internal(g.Long()), "").
	Field("visibleVolumeId", g.Long(), "").
	Field("templateId", internal(g.Long()), "").
	Field("objectsCount", g.Int(), "").
	Field("creationTimestamp", g.Long(), "").
	Field("flags", internal(g.Int()), "").
	Field("tags", Tags, "").
	MustBuild()

var VolumeSummary = g.Record("VolumeSummary").
	Extends(VolumeSummaryBase).
	Field("name", VolumeName, "The name of the volume.").
	MustBuild()

var SnapshotSummary = g.Record("SnapshotSummary").
	Extends(VolumeSummaryBase).
	Doc(`
		name: The name of the snapshot.
		onVolume: The volume this snapshot is a parent of.
		autoName: Whether the snapshot is anonymous.
		bound: Bound snapshots are garbage-collected once they have no children and are not attached.
		deleted: Whether the snapshot is being deleted.
		transient: Transient snapshots are created internally when cloning a volume. They may be garbage-collected at any time and cannot be attached.
		targetDeleteDate: When the snapshot is scheduled for deletion, as a UNIX timestamp.
		globalId: The global snapshot identifier.
		recoveringFromRemote: Whether the snapshot data is being transferred from a remote location.
	`).
	Field("name", SnapshotName, "").
	Field("onVolume", VolumeName, "").
	Field("autoName", g.Bool(), "").
	Field("bound", g.Bool(), "").
	Field("deleted", g.Bool(), "").
	Field("transient", g.Bool(), "").
	Field("targetDeleteDate", maybe(g.Int()), "").
	Field("globalId", GlobalVolumeID, "").
	Field("recoveringFromRemote", g.Bool(), "").
	MustBuild()

var SnapshotSpace = g.Record("SnapshotSpace").
	Extends(SnapshotSummary).
	Doc(`
		storedSize: Bytes of client data on the snapshot, without replication overhead.
		spaceUsed: Bytes of client data freed if the snapshot is deleted.
	`).
	Field("storedSize", g.Long(), "").
	Field("spaceUsed", g.Long(), "").
	MustBuild()

var VolumeSpace = g.Record("VolumeSpace").
	Extends(VolumeSummary).
	Doc(`
		storedSize: Bytes of client data on the volume, without replication overhead.
		spaceUsed: Bytes of client data on the volume including all its parents.
	`).
	Field("storedSize", g.Long(), "").
	Field("spaceUsed", g.Long(), "").
	MustBuild()

var VolumeChainStat = g.Record("VolumeChainStat").
	Field("disks", listOf(DiskID), "The IDs of the disks.").
	Field("count", g.Int(), "The number of objects on the disks.").
	MustBuild()

var VolumeInfo = g.Record("VolumeInfo").
	Extends(VolumeSummary).
	Field("disksCount", g.Int(), "").
	Field("objectsPerDisk", mapOf(DiskID, g.Int()), "").
	Field("objectsPerChain", listOf(VolumeChainStat), "").
	Field("objectsPerDiskSet", listOf(VolumeChainStat), "").
	MustBuild()

var SnapshotInfo = g.Record("SnapshotInfo").
	Extends(SnapshotSummary).
	Field("disksCount", g.Int(), "").
	Field("objectsPerDisk", mapOf(DiskID, g.Int()), "").
	Field("objectsPerChain", listOf(VolumeChainStat), "").
	Field("objectsPerDiskSet", listOf(VolumeChainStat), "").
	MustBuild()

var VolumeStatus = g.Record("VolumeStatus").
	Doc(`
		status: up when operational; up soon while object versions are synchronized after a disk returned; data lost when the last copy of some data is gone; down when objects are missing and requests cannot be served.
		snapshot: Whether this describes a snapshot.
		migrating: Whether the volume is being reallocated.
		decreasedRedundancy: Whether any replica is missing.
		balancerBlocked: Whether rebalancing is impossible with the current placement, e.g. because of missing or soft-ejecting drives.
		storedSize: Bytes of client data, without replication overhead.
		onDiskSize: Bytes the objects occupy on the disks.
		syncingDataBytes: Bytes in objects being synchronized.
		syncingMetaObjects: The number of objects being synchronized.
		downBytes: Bytes that are not accessible.
		downDrives: Inaccessible drives the volume needs. The volume stays down until they reappear.
		missingDrives: Inaccessible drives the volume can do without while degraded.
	`).
	Field("name", VolumeOrSnapshot, "").
	Field("size", VolumeSize, "").
	Field("replication", VolumeReplication, "").
	Field("status", g.OneOf("VolumeCurentStatus", "up", "up soon", "data lost", "down"), "").
	Field("snapshot", g.Bool(), "").
	Field("migrating", g.Bool(), "").
	Field("decreasedRedundancy", g.Bool(), "").
	Field("balancerBlocked", g.Bool(), "").
	Field("storedSize", g.Long(), "").
	Field("onDiskSize", g.Long(), "").
	Field("syncingDataBytes", g.Long(), "").
	Field("syncingMetaObjects", g.Int(), "").
	Field("downBytes", g.Long(), "").
	Field("downDrives", listOf(DiskID), "").
	Field("missingDrives", listOf(DiskID), "").
	Field("missingTargetDrives", listOf(DiskID), "").
	Field("softEjectingDrives", listOf(DiskID), "").
	Field("tags", Tags, "").
	MustBuild()

const placementDocsDetail = `
		targetDiskSets: The sets of disks the data should be stored on.
		objects: Where each object is stored.
`

var Snapshot = g.Record("Snapshot").
	Extends(SnapshotSummary).
	Doc(placementDocsDetail).
	Field("targetDiskSets", listOf(listOf(DiskID)), "").
	Field("objects", listOf(listOf(DiskID)), "").
	MustBuild()

var Volume = g.Record("Volume").
	Extends(VolumeSummary).
	Doc(placementDocsDetail).
	Field("targetDiskSets", listOf(listOf(DiskID)), "").
	Field("objects", listOf(listOf(DiskID)), "").
	MustBuild()

// Request bodies

var VolumePolicyDesc = g.Record("VolumePolicyDesc").
	Doc(placementDocs+`
		bw: Bandwidth limit in KB.
		iops: IOPS limit.
		replication: The number of copies kept.
		reuseServer: Allow replicas on the same server.
		tags: Optional name/value tags.
	`).
	Field("placeAll", maybe(PlacementGroupName), "").
	Field("placeTail", maybe(PlacementGroupName), "").
	Field("placeHead", maybe(PlacementGroupName), "").
	Field("replication", maybe(VolumeReplication), "").
	Field("bw", maybe(Bandwidth), "").
	Field("iops", maybe(IOPS), "").
	Field("reuseServer", maybe(g.Bool()), "").
	Field("tags", Tags, "").
	MustBuild()

var VolumeCreateDesc = g.Record("VolumeCreateDesc").
	Extends(VolumePolicyDesc).
	Doc(`
		name: The name of the new volume.
		size: The size in bytes.
		parent: The snapshot the new volume is based on.
		template: The template the settings are taken from.
		baseOn: An existing volume the new one is a copy of.
	`).
	Field("name", VolumeName, "").
	Field("size", maybe(VolumeSize), "").
	Field("parent", maybe(SnapshotName), "").
	Field("template", maybe(VolumeTemplateName), "").
	Field("baseOn", maybe(VolumeName), "").
	MustBuild()

var VolumeUpdateDesc = g.Record("VolumeUpdateDesc").
	Extends(VolumePolicyDesc).
	Doc(`
		rename: The new name.
		size: The new size in bytes.
		sizeAdd: The number of bytes to grow the volume by.
		template: The new template the settings are taken from.
		shrinkOk: Allow reducing the size.
	`).
	Field("rename", maybe(VolumeName), "").
	Field("size", maybe(VolumeSize), "").
	Field("sizeAdd", maybe(VolumeResize), "").
	Field("template", maybe(VolumeTemplateName), "").
	Field("shrinkOk", maybe(g.Bool()), "").
	MustBuild()

const deleteDateDocs = `
		targetDeleteDate: An absolute deletion time as a UNIX timestamp, not in the past. 0 leaves it unset.
		deleteAfter: Seconds after the current time on the management node to schedule deletion at. 0 leaves it unset.
`

var VolumeSnapshotDesc = g.Record("VolumeSnapshotDesc").
	Doc(deleteDateDocs + `
		name: The name of the new snapshot. The management service generates one when it is left out.
		bind: Bind the lifetime of the snapshot to its children.
		tags: Short name/value pairs stored with the snapshot.
	`).
	Field("name", maybe(VolumeName), "").
	Field("bind", maybe(g.Bool()), "").
	Field("targetDeleteDate", maybe(g.Int()), "").
	Field("deleteAfter", maybe(g.Int()), "").
	Field("tags", Tags, "").
	MustBuild()

var SnapshotUpdateDesc = g.Record("SnapshotUpdateDesc").
	Extends(VolumePolicyDesc).
	Doc(`
		rename: The new name.
		bind: true binds the snapshot, false unbinds it. Left out means no change.
		targetDeleteDate: An absolute deletion time as a UNIX timestamp, or 0 to disable automatic deletion.
		deleteAfter: Seconds from now to schedule deletion at, or 0 to discard a scheduled deletion.
		tags: Short name/value pairs stored with the snapshot.
	`).
	Field("rename", maybe(VolumeName), "").
	Field("bind", maybe(g.Bool()), "").
	Field("targetDeleteDate", maybe(g.Int()), "").
	Field("deleteAfter", maybe(g.Int()), "").
	Field("tags", Tags, "").
	MustBuild()

var VolumeRebaseDesc = g.Record("VolumeRebaseDesc").
	Field("parentName", maybe(SnapshotName), "One of the parents to rebase on. Left out rebases to base.").
	MustBuild()

var AbandonDiskDesc = g.Record("AbandonDiskDesc").
	Field("diskId", DiskID, "The disk to abandon.").
	MustBuild()

var VolumeFreezeDesc = g.Record("VolumeFreezeDesc").
	Doc(deleteDateDocs).
	Field("targetDeleteDate", maybe(g.Int()), "").
	Field("deleteAfter", maybe(g.Int()), "").
	MustBuild()

// Attachments

// DetachClients is a list of client IDs or "all".
var DetachClients = g.EitherOr(listOf(ClientID), "all")

var VolumeReassignDesc = g.Record("VolumeReassignDesc").
	Doc(`
		volume: The volume to reassign.
		detach: The clients to detach the volume from.
		ro: The clients to attach the volume to read-only.
		rw: The clients to attach the volume to read/write.
		force: Detach the volume even if it is open.
	`).
	Field("volume", VolumeName, "").
	Field("detach", maybe(DetachClients), "").
	Field("ro", maybe(listOf(ClientID)), "").
	Field("rw", maybe(listOf(ClientID)), "").
	Field("force", flag(), "").
	MustBuild()

var SnapshotReassignDesc = g.Record("SnapshotReassignDesc").
	Doc(`
		snapshot: The snapshot to reassign.
		detach: The clients to detach the snapshot from.
		ro: The clients to attach the snapshot to.
		force: Detach the snapshot even if it is open.
	`).
	Field("snapshot", SnapshotName, "").
	Field("detach", maybe(DetachClients), "").
	Field("ro", maybe(listOf(ClientID)), "").
	Field("force", flag(), "").
	MustBuild()

// Reassign is one entry of a VolumesReassign request.
var Reassign = g.Either(VolumeReassignDesc, SnapshotReassignDesc)

var VolumesReassignWaitDesc = g.Record("VolumesReassignWaitDesc").
	Doc(`
		reassign: The volumes and snapshots to change the attachments of.
		attachTimeout: Seconds to wait for missing clients when attaching. Left out waits forever; 0 returns at once even if clients are missing.
	`).
	Field("reassign", listOf(Reassign), "").
	Field("attachTimeout", maybe(g.Int()), "").
	MustBuild()

var AttachmentDesc = g.Record("AttachmentDesc").
	Doc(`
		snapshot: Whether a snapshot is attached.
		client: The client it is attached on.
		volume: The name of the attached volume.
		rights: Read-only or read/write. Snapshots are always ro.
		pos: The attachment position on the client, used to name the /dev/spN device node.
	`).
	Field("volume", VolumeName, "").
	Field("snapshot", g.Bool(), "").
	Field("client", ClientID, "").
	Field("rights", AttachmentRights, "").
	Field("pos", AttachmentPos, "").
	MustBuild()

// Volume templates

var VolumeTemplateDesc = g.Record("VolumeTemplateDesc").
	Extends(VolumeLimits).
	Doc(placementDocs+`
		name: The name of the template.
		parentName: The snapshot volumes are based on.
		size: The default volume size in bytes.
		replication: The default number of copies.
		reuseServer: Allow replicas on the same server.
	`).
	Field("id", internal(g.Int()), "").
	Field("name", VolumeTemplateName, "").
	Field("parentName", g.EitherOr(SnapshotName, ""), "").
	Field("placeAll", PlacementGroupName, "").
	Field("placeTail", PlacementGroupName, "").
	Field("placeHead", PlacementGroupName, "").
	Field("size", g.EitherOr(VolumeSize, "-"), "").
	Field("replication", g.EitherOr(VolumeReplication, "-"), "").
	Field("reuseServer", maybe(g.Bool()), "").
	MustBuild()

var VolumeTemplateSpaceEstInternal = g.Record("VolumeTemplateSpaceEstInternal").
	Field("u1", g.Int(), "").
	Field("u2", g.Int(), "").
	Field("u3", g.Int(), "").
	MustBuild()

var VolumeTemplateSpaceEstEntry = g.Record("VolumeTemplateSpaceEstEntry").
	Field("free", g.Long(), "Estimated free space.").
	Field("capacity", g.Long(), "Estimated client data capacity.").
	Field("internal", internal(VolumeTemplateSpaceEstInternal), "").
	MustBuild()

var VolumeTemplateSpaceEst = g.Record("VolumeTemplateSpaceEst").
	Extends(VolumeTemplateSpaceEstEntry).
	Field("placeAll", VolumeTemplateSpaceEstEntry, "Estimates for the placeAll group.").
	Field("placeTail", VolumeTemplateSpaceEstEntry, "Estimates for the placeTail group.").
	Field("placeHead", VolumeTemplateSpaceEstEntry, "Estimates for the placeHead group.").
	MustBuild()

var VolumeTemplateStatusDesc = g.Record("VolumeTemplateStatusDesc").
	Doc(placementDocs+`
		name: The name of the template.
		replication: The number of copies if the template sets it, "-" otherwise.
		volumesCount: The number of volumes using the template.
		snapshotsCount: The number of snapshots using the template, including those being deleted.
		removingSnapshotsCount: The number of snapshots using the template that are being deleted.
		size: Bytes of all volumes using the template, without overhead.
		totalSize: Bytes of all volumes using the template, with replication overhead.
		storedSize: Bytes of client data on all volumes using the template.
		onDiskSize: Bytes occupied on disk by all volumes using the template.
		availablePlaceAll: Estimated free space in the placeAll group.
		availablePlaceTail: Estimated free space in the placeTail group.
		availablePlaceHead: Estimated free space in the placeHead group.
		capacityPlaceAll: Estimated physical space in the placeAll group.
		capacityPlaceTail: Estimated physical space in the placeTail group.
		capacityPlaceHead: Estimated physical space in the placeHead group.
		stored: Estimated client data capacity and free space.
	`).
	Field("id", internal(g.Int()), "").
	Field("name", VolumeTemplateName, "").
	Field("placeAll", PlacementGroupName, "").
	Field("placeTail", PlacementGroupName, "").
	Field("placeHead", PlacementGroupName, "").
	Field("replication", g.EitherOr(VolumeReplication, "-"), "").
	Field("volumesCount", g.Int(), "").
	Field("snapshotsCount", g.Int(), "").
	Field("removingSnapshotsCount", g.Int(), "").
	Field("size", g.EitherOr(VolumeSize, 0), "").
	Field("totalSize", g.EitherOr(VolumeSize, 0), "").
	Field("onDiskSize", g.Long(), "").
	Field("storedSize", g.Long(), "").
	Field("availablePlaceAll", g.Long(), "").
	Field("availablePlaceTail", g.Long(), "").
	Field("availablePlaceHead", g.Long(), "").
	Field("capacityPlaceAll", g.Long(), "").
	Field("capacityPlaceTail", g.Long(), "").
	Field("capacityPlaceHead", g.Long(), "").
	Field("stored", VolumeTemplateSpaceEst, "").
	MustBuild()

var VolumeTemplateCreateDesc = g.Record("VolumeTemplateCreateDesc").
	Extends(VolumePolicyDesc).
	Doc(`
		name: The name of the new template.
		parent: The snapshot volumes created from the template are based on.
		size: The default volume size in bytes.
	`).
	Field("name", VolumeTemplateName, "").
	Field("parent", maybe(SnapshotName), "").
	Field("size", maybe(VolumeSize), "").
	MustBuild()

var VolumeTemplateUpdateDesc = g.Record("VolumeTemplateUpdateDesc").
	Extends(VolumePolicyDesc).
	Doc(`
		rename: The new name of the template.
		parent: The snapshot volumes created from the template are based on.
		size: The default volume size in bytes.
		propagate: Apply the change to every volume and snapshot using the template.
	`).
	Field("rename", maybe(VolumeTemplateName), "").
	Field("parent", maybe(SnapshotName), "").
	Field("size", maybe(VolumeSize), "").
	Field("propagate", maybe(g.Bool()), "").
	MustBuild()

// Relocator and balancer

var VolumeRelocatorStatus = g.Record("VolumeRelocatorStatus").
	Doc(`
		status: off when the relocator is turned off, on when it runs, blocked when relocation is blocked, usually by missing drives.
		volumesToRelocate: The number of volumes being relocated.
	`).
	Field("status", g.OneOf("RelocatorStatus", "on", "off", "blocked"), "").
	Field("volumesToRelocate", g.Int(), "").
	MustBuild()

var VolumeBalancerStatus = g.Record("VolumeBalancerStatus").
	Field("status", g.OneOf("BalancerStatus", "nothing to do", "blocked", "waiting", "working", "ready", "commiting"), "The balancer status.").
	Field("auto", g.Bool(), "Whether the balancer runs automatically.").
	MustBuild()

var VolumeBalancerCommand = g.Record("VolumeBalancerCommand").
	Field("cmd", g.OneOf("BalancerCommand", "start", "stop", "commit"),
		"start runs the balancer, stop aborts the current run and commit applies the new allocation.").
	MustBuild()

var VolumeBalancerVolumeStatus = g.Record("VolumeBalancerVolumeStatus").
	Doc(placementDocs+`
		size: The size in bytes.
		replication: The number of copies kept.
		objectsCount: The number of objects.
		snapshot: Whether this describes a snapshot.
		reallocated: Whether the balancer will reallocate it.
		blocked: Whether rebalancing is impossible with the current placement.
	`).
	Field("name", VolumeOrSnapshot, "").
	Field("placeAll", PlacementGroupName, "").
	Field("placeTail", PlacementGroupName, "").
	Field("placeHead", PlacementGroupName, "").
	Field("replication", VolumeReplication, "").
	Field("size", g.Long(), "").
	Field("objectsCount", g.Int(), "").
	Field("snapshot", g.Bool(), "").
	Field("reallocated", g.Bool(), "").
	Field("blocked", g.Bool(), "").
	MustBuild()

var VolumeBalancerVolumeDiskSets = g.Record("VolumeBalancerVolumeDiskSets").
	Extends(VolumeBalancerVolumeStatus).
	Field("currentDiskSets", listOf(listOf(DiskID)), "The disk sets the data is stored on now.").
	Field("balancerDiskSets", listOf(listOf(DiskID)), "The disk sets proposed by the balancer.").
	MustBuild()

var TargetDesc = g.Record("TargetDesc").
	Doc(`
		delta: target minus current.
		toRecover: The amount to recover to reach the target.
	`).
	Field("current", g.Long(), "").
	Field("target", g.Long(), "").
	Field("delta", g.Long(), "").
	Field("toRecover", g.Long(), "").
	MustBuild()

var DownDiskTarget = g.Record("DownDiskTarget").
	Field("id", DiskID, "").
	Field("serverId", ServerID, "The server the disk was last on.").
	Field("generationLeft", g.Long(), "The last cluster generation the disk was active in.").
	MustBuild()

var UpDiskTarget = g.Record("UpDiskTarget").
	Doc(`
		objectsCount: The maximum number of objects on the disk.
		objectsAllocated: Objects to be allocated on the disk.
		storedSize: Client data to be stored on the disk.
		onDiskSize: Space the objects will occupy on the disk.
	`).
	Field("id", DiskID, "").
	Field("serverId", ServerID, "").
	Field("generationLeft", g.Const(GenerationNone), "").
	Field("objectsAllocated", TargetDesc, "").
	Field("objectsCount", g.Int(), "").
	Field("storedSize", TargetDesc, "").
	Field("onDiskSize", TargetDesc, "").
	MustBuild()

// DiskTarget discriminates like DiskSummary.
var DiskTarget = g.Either(UpDiskTarget, DownDiskTarget)

var VolumeBalancerSlot = g.Record("VolumeBalancerSlot").
	Field("storedSize", g.Long(), "Bytes of client data on the disk set.").
	Field("objectsCount", g.Int(), "Objects on the disk set.").
	MustBuild()

var VolumeBalancerAllocationGroup = g.Record("VolumeBalancerAllocationGroup").
	Doc(placementDocs+`
		root: The root volume or snapshot of the group.
		volumes: Every volume and snapshot in the group.
		size: The total size of the group.
		storedSize: Bytes of client data in the group.
		objectsCount: The number of objects in the group.
		replication: The number of copies kept.
		feasible: Whether new volumes fit the placement and redundancy constraints.
		blocked: Whether rebalancing is impossible with the current placement.
		targetDiskSets: The current disk sets.
		slots: Statistics for each disk set.
		reuseServer: Allow replicas on the same server.
	`).
	Field("placeAll", PlacementGroupName, "").
	Field("placeTail", PlacementGroupName, "").
	Field("placeHead", PlacementGroupName, "").
	Field("replication", VolumeReplication, "").
	Field("feasible", g.Bool(), "").
	Field("blocked", g.Bool(), "").
	Field("size", g.Long(), "").
	Field("storedSize", g.Long(), "").
	Field("objectsCount", g.Int(), "").
	Field("root", VolumeOrSnapshot, "").
	Field("volumes", listOf(VolumeOrSnapshot), "").
	Field("targetDiskSets", listOf(listOf(DiskID)), "").
	Field("slots", listOf(VolumeBalancerSlot), "").
	Field("reuseServer", maybe(g.Bool()), "").
	MustBuild()
