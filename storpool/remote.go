package storpool

import (
	g "github.com/storpool/spschema/dsl"
	"github.com/storpool/spschema/method"
)

// Remote locations, exports and backups

var SnapshotFromRemoteDesc = g.Record("SnapshotFromRemoteDesc").
	Doc(placementDocs+`
		remoteLocation: The remote location to fetch the snapshot from.
		remoteId: The global snapshot identifier.
		name: The name of the new snapshot.
		replication: The number of copies kept.
		template: The template the settings are taken from.
		export: Export the snapshot after creating it, e.g. for backup.
		tags: Short name/value pairs stored with the snapshot.
	`).
	Field("remoteLocation", RemoteLocationName, "").
	Field("remoteId", GlobalVolumeID, "").
	Field("name", maybe(VolumeName), "").
	Field("placeAll", maybe(PlacementGroupName), "").
	Field("placeTail", maybe(PlacementGroupName), "").
	Field("placeHead", maybe(PlacementGroupName), "").
	Field("replication", maybe(VolumeReplication), "").
	Field("template", maybe(VolumeTemplateName), "").
	Field("export", maybe(g.Bool()), "").
	Field("tags", Tags, "").
	MustBuild()

var SnapshotExportDesc = g.Record("SnapshotExportDesc").
	Field("snapshot", SnapshotName, "").
	Field("location", RemoteLocationName, "The remote location to grant access to.").
	MustBuild()

var SnapshotUnexportDesc = g.Record("SnapshotUnexportDesc").
	Doc(`
		location: The remote location to revoke access from.
		all: Revoke access from every location.
		force: Skip checking whether the snapshot is still recovering at the remote location.
	`).
	Field("snapshot", SnapshotName, "").
	Field("location", maybe(RemoteLocationName), "").
	Field("all", maybe(g.Bool()), "").
	Field("force", maybe(g.Bool()), "").
	MustBuild()

var VolumeBackupDesc = g.Record("VolumeBackupDesc").
	Field("volume", VolumeName, "The volume to back up.").
	Field("location", RemoteLocationName, "The remote location to back up to.").
	Field("tags", Tags, "").
	MustBuild()

var VolumesGroupBackupSingle = g.Record("VolumesGroupBackupSingle").
	Field("remoteId", GlobalVolumeID, "The globally unique ID of the backup.").
	MustBuild()

var VolumesGroupBackupDesc = g.Record("VolumesGroupBackupDesc").
	Field("location", RemoteLocationName, "The remote location to back up to.").
	Field("volumes", listOf(VolumeName), "The volumes to back up.").
	Field("tags", Tags, "").
	MustBuild()

var RemoteSnapshot = g.Record("RemoteSnapshot").
	Doc(`
		location: Where the snapshot is.
		creationTimestamp: The creation time as a UNIX timestamp.
		size: The size in bytes.
		remoteId: The global snapshot identifier.
		onVolume: The local volume the snapshot was created on, if any.
		localSnapshot: The local copy of the remote snapshot, if any.
	`).
	Field("name", VolumeName, "").
	Field("location", RemoteLocationName, "").
	Field("creationTimestamp", g.Long(), "").
	Field("size", VolumeSize, "").
	Field("remoteId", GlobalVolumeID, "").
	Field("onVolume", maybe(VolumeName), "").
	Field("localSnapshot", maybe(SnapshotName), "").
	MustBuild()

var RemoteLocation = g.Record("RemoteLocation").
	Field("id", LocationID, "A unique location ID.").
	Field("name", RemoteLocationName, "").
	MustBuild()

var Export = g.Record("Export").
	Doc(`
		location: The location the snapshot is exported to.
		globalId: The global snapshot identifier.
		backingUp: Whether a backup is in progress.
	`).
	Field("snapshot", SnapshotName, "").
	Field("location", RemoteLocationName, "").
	Field("globalId", GlobalVolumeID, "").
	Field("backingUp", maybe(g.Bool()), "").
	Field("volumeId", internal(g.Long()), "").
	Field("visibleVolumeId", internal(g.Long()), "").
	MustBuild()

var SnapshotRemoteUnexportDesc = g.Record("SnapshotRemoteUnexportDesc").
	Doc(`
		location: The location to unexport from.
		globalSnapshotId: The snapshot to unexport.
		targetDeleteDate: Ask the remote location to delete the snapshot at this time. It may refuse.
		deleteAfter: Like targetDeleteDate, in seconds from the current time on the management node.
	`).
	Field("location", RemoteLocationName, "").
	Field("globalSnapshotId", GlobalVolumeID, "").
	Field("targetDeleteDate", maybe(g.Int()), "").
	Field("deleteAfter", maybe(g.Int()), "").
	MustBuild()

var SnapshotsRemoteUnexport = g.Record("SnapshotsRemoteUnexport").
	Field("remoteSnapshots", listOf(SnapshotRemoteUnexportDesc), "").
	MustBuild()

var GroupSnapshotSpec = g.Record("GroupSnapshotSpec").
	Field("volume", VolumeName, "The volume to snapshot.").
	Field("name", maybe(SnapshotName), "The name of the new snapshot.").
	MustBuild()

var GroupSnapshotsSpec = g.Record("GroupSnapshotsSpec").
	Field("volumes", listOf(GroupSnapshotSpec), "The volumes to snapshot.").
	MustBuild()

var GroupSnapshotResult = g.Record("GroupSnapshotResult").
	Field("volume", VolumeName, "The source volume.").
	Field("snapshot", maybe(SnapshotName), "The new snapshot.").
	Field("remoteId", GlobalVolumeID, "The globally unique ID of the new snapshot.").
	MustBuild()

var GroupSnapshotsResult = g.Record("GroupSnapshotsResult").
	Field("volumes", listOf(GroupSnapshotResult), "").
	MustBuild()

// Replies extending ApiOk

var ApiOkVolumeCreate = g.Record("ApiOkVolumeCreate").
	Extends(method.ApiOk).
	Field("autoName", maybe(SnapshotName), "The transient snapshot used while creating the volume.").
	MustBuild()

var ApiOkVolumeBackup = g.Record("ApiOkVolumeBackup").
	Extends(ApiOkVolumeCreate).
	Field("remoteId", maybe(GlobalVolumeID), "The globally unique ID of the backup.").
	MustBuild()

var ApiOkVolumesGroupBackup = g.Record("ApiOkVolumesGroupBackup").
	Extends(method.ApiOk).
	Field("backups", mapOf(VolumeName, VolumesGroupBackupSingle), "The backup ID of each volume.").
	MustBuild()

var ApiOkSnapshotCreate = g.Record("ApiOkSnapshotCreate").
	Extends(method.ApiOk).
	Doc(`
		autoName: The transient snapshot used while creating the snapshot.
		snapshotGlobalId: The global snapshot identifier.
		snapshotVisibleVolumeId: The ID the snapshot was created with.
	`).
	Field("autoName", maybe(SnapshotName), "").
	Field("snapshotGlobalId", maybe(GlobalVolumeID), "").
	Field("snapshotVisibleVolumeId", maybe(g.Long()), "").
	MustBuild()

// Single-key listings

var ExportsList = g.Record("ExportsList").
	Field("exports", listOf(Export), "").
	MustBuild()

var RemoteSnapshotsList = g.Record("RemoteSnapshotsList").
	Field("snapshots", listOf(RemoteSnapshot), "").
	MustBuild()

var RemoteVolumesList = g.Record("RemoteVolumesList").
	Field("volumes", listOf(RemoteSnapshot), "").
	MustBuild()

var LocationsList = g.Record("LocationsList").
	Field("locations", listOf(RemoteLocation), "").
	MustBuild()

var LocationRemoveDesc = g.Record("LocationRemoveDesc").
	Field("location", RemoteLocationName, "The location to remove.").
	MustBuild()
