package storpool

import (
	g "github.com/storpool/spschema/dsl"
)

// Network

var NetDesc = g.Record("NetDesc").
	Field("mac", MacAddr, "").
	MustBuild()

var RdmaDesc = g.Record("RdmaDesc").
	Field("guid", GUID, "").
	Field("state", RdmaState, "").
	MustBuild()

var PeerDesc = g.Record("PeerDesc").
	Doc(`
		beaconStatus: Whether a beacon is running at all on this node.
		clusterStatus: Whether this node is considered part of the cluster quorum.
		joined: Whether the node considers itself part of the cluster quorum.
		networks: The Ethernet networks StorPool communicates through on this node.
		rdma: The RDMA networks StorPool communicates through on this node.
		nonVoting: Whether this is a non-voting node, e.g. client only.
	`).
	Field("beaconStatus", BeaconNodeStatus, "").
	Field("clusterStatus", BeaconClusterStatus, "").
	Field("joined", g.Bool(), "").
	Field("networks", maybe(mapOf(NetID, NetDesc)), "").
	Field("rdma", mapOf(NetID, RdmaDesc), "").
	Field("nonVoting", g.Bool(), "").
	MustBuild()

// Services

var Service = g.Record("Service").
	Doc(`
		nodeId: The ID of the node the service runs on.
		version: The version of the running service.
		startTime: The start time of the service as a UNIX timestamp.
	`).
	Field("nodeId", NodeID, "").
	Field("version", g.String(), "").
	Field("startTime", g.EitherOr(g.Int(), nil), "").
	MustBuild()

var Server = g.Record("Server").
	Extends(Service).
	Doc(`
		id: The ID of the service, currently the ID of the node.
		status: down while no server daemon runs or it still recovers its drives; waiting while it waits for disks to appear; booting while it joins the cluster; running once it serves requests.
		missingDisks: The cluster stays down until these disks are seen again.
		pendingDisks: Disks that are ready and waiting for the missing ones.
	`).
	Field("id", ServerID, "").
	Field("status", ServerStatus, "").
	Field("missingDisks", listOf(DiskID), "").
	Field("pendingDisks", listOf(DiskID), "").
	MustBuild()

var Client = g.Record("Client").
	Extends(Service).
	Field("id", ClientID, "The ID of the service, currently the ID of the node.").
	Field("status", ClientStatus, "The current status of the client.").
	MustBuild()

var Mgmt = g.Record("Mgmt").
	Extends(Service).
	Doc(`
		id: The ID of the service.
		status: The current status of the management instance.
		active: Whether this instance is the active one. One instance per cluster is active at a time.
	`).
	Field("id", MgmtID, "").
	Field("status", ClientStatus, "").
	Field("prio", internal(g.Int()), "").
	Field("active", g.Bool(), "").
	MustBuild()

var Bridge = g.Record("Bridge").
	Extends(Service).
	Field("id", BridgeID, "The ID of the service.").
	Field("status", BridgeStatus, "The current status of the remote cluster bridge.").
	MustBuild()

var ClusterStatus = g.Record("ClusterStatus").
	Doc(`
		clusterStatus: running with at least one running server; waiting while in quorum but servers still negotiate; down without quorum.
	`).
	Field("clusterStatus", ClusterStatusValue, "").
	Field("mgmt", mapOf(MgmtID, Mgmt), "").
	Field("clients", mapOf(ClientID, Client), "").
	Field("servers", mapOf(ServerID, Server), "").
	Field("bridges", mapOf(BridgeID, Bridge), "").
	MustBuild()

// Clients

var ClientConfigStatus = g.Record("ClientConfigStatus").
	Doc(`
		generation: The cluster generation, counting configuration changes since the cluster was created.
		clientGeneration: The generation of the client.
		configStatus: Whether a configuration update is in progress.
		delay: Time it took the client generation to reach the cluster generation. Always 0 outside ClientConfigWait.
	`).
	Field("id", ClientID, "").
	Field("generation", g.Long(), "").
	Field("clientGeneration", g.Long(), "").
	Field("configStatus", g.OneOf("client status", "ok", "updating", "down"), "").
	Field("delay", g.Int(), "").
	MustBuild()

// Tasks

var Task = g.Record("Task").
	Doc(`
		diskId: The disk the task runs on.
		transactionId: Shared by all tasks started by the same action, e.g. reallocating one volume.
		allObjects: The number of objects the task works on.
		completedObjects: The number of objects the task has finished.
		dispatchedObjects: The number of objects the task has started on.
	`).
	Field("diskId", DiskID, "").
	Field("transactionId", g.Long(), "").
	Field("allObjects", g.Int(), "").
	Field("completedObjects", g.Int(), "").
	Field("dispatchedObjects", g.Int(), "").
	Field("unresolvedObjects", internal(g.Int()), "").
	MustBuild()

// Disks

var DiskObject = g.Record("DiskObject").
	Doc(`
		parentVolume: The name of the parent snapshot.
		generation: The generation of the last write to the object.
		onDiskSize: The space allocated on the disk for the object, up to 32MB.
		storedSize: The size of the data in the object, at most onDiskSize.
		volume: The volume the object holds data for.
		version: Increased with each write.
	`).
	Field("objectId", internal(g.Int()), "").
	Field("generation", g.Long(), "").
	Field("version", g.Long(), "").
	Field("volume", g.String(), "").
	Field("parentVolume", g.String(), "").
	Field("onDiskSize", g.Int(), "").
	Field("storedSize", g.Int(), "").
	Field("state", ObjectState, "").
	Field("volumeId", internal(g.Long()), "").
	MustBuild()

var DiskVolumeInfo = g.Record("DiskVolumeInfo").
	Doc(`
		objectsCount: The number of objects of the volume on this disk.
		objectStates: The number of objects in each state.
		onDiskSize: The space allocated on the disk.
		storedSize: The size of the stored data.
	`).
	Field("name", g.String(), "").
	Field("storedSize", g.Long(), "").
	Field("onDiskSize", g.Long(), "").
	Field("objectsCount", g.Long(), "").
	Field("objectStates", mapOf(ObjectState, g.Int()), "").
	MustBuild()

var DiskWbcStats = g.Record("DiskWbcStats").
	Field("pages", g.Int(), "").
	Field("pagesPending", g.Int(), "").
	Field("maxPages", g.Int(), "").
	MustBuild()

var DiskAggregateScores = g.Record("DiskAggregateScores").
	Field("entries", g.Int(), "").
	Field("space", g.Int(), "").
	Field("total", g.Int(), "").
	MustBuild()

var DiskSummaryBase = g.Record("DiskSummaryBase").
	Doc(`
		id: The ID of the disk, set when it is formatted for StorPool.
		serverId: The server the disk is on, or was last seen on while down.
		ssd: Whether the device is an SSD.
		generationLeft: The last cluster generation the disk was active in, or -1 while it is active.
		softEject: The status of the soft-eject process.
		description: A user-defined description of the disk.
		model: The drive model.
		serial: The drive serial number.
	`).
	Field("id", DiskID, "").
	Field("serverId", ServerID, "").
	Field("ssd", g.Bool(), "").
	Field("generationLeft", g.Long(), "").
	Field("model", g.String(), "").
	Field("serial", g.String(), "").
	Field("description", DiskDescription, "").
	Field("softEject", g.OneOf("DiskSoftEjectStatus", "on", "off", "paused"), "").
	MustBuild()

var DownDiskSummary = g.Record("DownDiskSummary").
	Extends(DiskSummaryBase).
	MustBuild()

var UpDiskSummary = g.Record("UpDiskSummary").
	Extends(DiskSummaryBase).
	Doc(`
		sectorsCount: The number of 512-byte sectors on the disk.
		noFua: Whether FUA writes are disabled for the device.
		noFlush: Whether write-back cache flushing is disabled for the device.
		noTrim: Whether trim-below is disabled for the device.
		isWbc: Whether write-back cache is enabled for the device.
		journaled: Whether StorPool journaling is enabled for the device.
		device: The name of the device node on the server.
		entriesCount: The maximum number of entries on the disk.
		entriesAllocated: Used entries.
		entriesFree: Remaining entries.
		objectsCount: The maximum number of objects on the disk.
		objectsAllocated: Used objects.
		objectsFree: Remaining objects.
		empty: True if no volumes or snapshots are on the disk.
		objectsOnDiskSize: Total size occupied by objects, the estimated disk usage.
		scrubbingStartedBefore: Seconds since the current scrubbing job started.
		scrubbedBytes: Bytes scrubbed by the current job.
		scrubbingBW: Estimated scrubbing bandwidth in B/s.
		scrubbingFinishAfter: Estimated seconds until the scrubbing job finishes.
		scrubbingPausedFor: Seconds the current scrubbing job has been paused.
		scrubbingPaused: Whether scrubbing is paused.
		lastScrubCompleted: UNIX time the last scrubbing job completed.
	`).
	Field("generationLeft", g.Const(GenerationNone), "").
	Field("sectorsCount", g.Long(), "").
	Field("empty", g.Bool(), "").
	Field("noFua", g.Bool(), "").
	Field("noFlush", g.Bool(), "").
	Field("noTrim", g.Bool(), "").
	Field("isWbc", g.Bool(), "").
	Field("journaled", g.Bool(), "").
	Field("device", g.String(), "").
	Field("agCount", internal(g.Int()), "").
	Field("agAllocated", internal(g.Int()), "").
	Field("agFree", internal(g.Int()), "").
	Field("agFull", internal(g.Int()), "").
	Field("agPartial", internal(g.Int()), "").
	Field("agFreeing", internal(g.Int()), "").
	Field("agMaxSizeFull", internal(g.Int()), "").
	Field("agMaxSizePartial", internal(g.Int()), "").
	Field("entriesCount", g.Int(), "").
	Field("entriesAllocated", g.Int(), "").
	Field("entriesFree", g.Int(), "").
	Field("objectsCount", g.Int(), "").
	Field("objectsAllocated", g.Int(), "").
	Field("objectsFree", g.Int(), "").
	Field("objectsOnDiskSize", g.Long(), "").
	Field("wbc", internal(g.EitherOr(DiskWbcStats, nil)), "").
	Field("aggregateScore", internal(DiskAggregateScores), "").
	Field("scrubbingStartedBefore", g.Int(), "").
	Field("scrubbedBytes", g.Int(), "").
	Field("scrubbingBW", g.Int(), "").
	Field("scrubbingFinishAfter", g.Int(), "").
	Field("scrubbingPausedFor", g.Int(), "").
	Field("scrubbingPaused", g.Bool(), "").
	Field("lastScrubCompleted", g.Int(), "").
	MustBuild()

// DiskSummary is an up disk when generationLeft is -1 and a down disk
// otherwise.
var DiskSummary = g.Either(UpDiskSummary, DownDiskSummary)

var DiskInfo = g.Record("DiskInfo").
	Extends(UpDiskSummary).
	Doc(`
		objectStates: The number of objects in each state.
		volumeInfos: The volumes that have data on the disk.
	`).
	Field("objectStates", mapOf(ObjectState, g.Int()), "").
	Field("volumeInfos", mapOf(g.String(), DiskVolumeInfo), "").
	MustBuild()

var Disk = g.Record("Disk").
	Extends(UpDiskSummary).
	Field("objects", mapOf(g.Int(), DiskObject), "Each object on the disk.").
	MustBuild()

var DiskDescUpdate = g.Record("DiskDescUpdate").
	Field("description", DiskDescription, "A user-defined description of the disk.").
	MustBuild()

// Active requests

var ActiveRequestDesc = g.Record("ActiveRequestDesc").
	Doc(`
		requestId: A unique request ID that may be matched between clients and disks.
		requestIdx: A temporary local identifier of the request on this client or disk.
		address: The offset in bytes within the volume.
		size: The size of the request in bytes.
		op: The requested operation.
		msecActive: Time since the request was submitted.
	`).
	Field("requestId", g.String(), "").
	Field("requestIdx", g.Int(), "").
	Field("volume", VolumeOrSnapshot, "").
	Field("address", g.Long(), "").
	Field("size", g.Int(), "").
	Field("op", g.OneOf("RequestOp", "read", "write", "merge", "system", "entries flush", "#bad_state", "#bad_drOp"), "").
	Field("state", internal(g.String()), "").
	Field("prevState", internal(g.String()), "").
	Field("drOp", internal(g.String()), "").
	Field("msecActive", g.Int(), "").
	MustBuild()

var ClientActiveRequests = g.Record("ClientActiveRequests").
	Field("clientId", ClientID, "").
	Field("requests", listOf(ActiveRequestDesc), "The requests in progress on the client.").
	MustBuild()

var DiskActiveRequests = g.Record("DiskActiveRequests").
	Field("diskId", DiskID, "").
	Field("requests", listOf(ActiveRequestDesc), "The requests in progress on the disk.").
	MustBuild()
