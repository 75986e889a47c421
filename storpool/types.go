// Package storpool declares the records and calls of the StorPool
// control-plane API on top of the dsl and method packages.
//
// Declarations are evaluated once at package initialization and are
// read-only afterwards. API binds them to a transport:
//
//	api := storpool.New(client.New(cfg))
//	out, err := api.Call(ctx, "volumeDescribe", method.Call{Args: []any{"vol1"}})
package storpool

import (
	g "github.com/storpool/spschema/dsl"
)

// Limits and sizes of the API.
const (
	VolumeNameSize         = 200
	PlacementGroupNameSize = 128
	RemoteLocationNameSize = 64

	SectorSize     = g.SectorSize
	MaxChainLength = 6

	MaxClientDisks  = 1024
	MaxClientDisk   = MaxClientDisks - 1
	MaxClusterDisks = 4096
	MaxDiskID       = MaxClusterDisks - 1

	MaxNetID           = 3
	MaxNodeID          = 63
	MaxPeerID          = 0xffff
	PeerSubtypeBridge  = 0x7000
	PeerTypeClient     = 0x8000
	PeerSubtypeMgmt    = 0xf000
	MaxPeersPerSubtype = 0x1000
	MaxServerID        = PeerTypeClient - 1
	MaxClientID        = MaxPeersPerSubtype
	MaxBridgeID        = MaxPeersPerSubtype
	MaxMgmtID          = MaxPeersPerSubtype

	// GenerationNone is the generationLeft of a disk that is up.
	GenerationNone int64 = -1
)

// Name patterns.
const (
	VolumeNameRegex         = `^\#?[A-Za-z0-9_\-.:]+$`
	SnapshotNameRegex       = `^\*?[A-Za-z0-9_\-.:@]+$`
	PlacementGroupNameRegex = `^[A-Za-z0-9_\-]+$`
	VolumeTemplateNameRegex = `^[A-Za-z0-9_\-]+$`
	DiskDescRegex           = `^[A-Za-z0-9_\- ]{0,30}$`
	RemoteLocationNameRegex = VolumeNameRegex
	VolumeTagNameRegex      = `^[A-Za-z0-9_\-.:]+$`
	VolumeTagValueRegex     = `^[A-Za-z0-9_\-.:]*$`
	ISCSINameRegex          = `^[a-z0-9\-.:]+$`
	ISCSIPGNameRegex        = `^[A-Za-z0-9_\-.:]+$`
)

// Leaf validators.
var (
	MacAddr             = g.Regex("MAC Address", `^([0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2}$`)
	BeaconNodeStatus    = g.OneOf("BeaconNodeStatus", "NODE_DOWN", "NODE_UP")
	BeaconClusterStatus = g.OneOf("BeaconClusterStatus", "CNODE_DOWN", "CNODE_DAMPING", "CNODE_UP")
	PeerStatus          = g.OneOf("PeerStatus", "up", "down")
	ClientStatus        = g.OneOf("ClientStatus", "running", "down")
	ServerStatus        = g.OneOf("ServerStatus", "running", "waiting", "booting", "down")
	BridgeStatus        = g.OneOf("BridgeStatus", "running", "joining", "down")
	ClusterStatusValue  = g.OneOf("ClusterStatus", "running", "waiting", "down")
	GUID                = g.Regex("GUID", `^0x[0-9a-fA-F]{2,16}$`)
	RdmaState           = g.OneOf("RdmaState", "Idle", "GidReceived", "Connecting", "Connected", "pendingError", "Error")

	NetID    = g.IntRange("NetID", 0, MaxNetID)
	NodeID   = g.IntRange("NodeID", 0, MaxNodeID)
	PeerID   = g.IntRange("PeerID", 0, MaxPeerID)
	ClientID = g.IntRange("ClientID", 1, MaxClientID)
	ServerID = g.IntRange("ServerID", 1, MaxServerID)
	MgmtID   = g.IntRange("MgmtID", 1, MaxMgmtID)
	BridgeID = g.IntRange("BridgeId", 1, MaxBridgeID)

	DiskID          = g.IntRange("DiskID", 0, MaxDiskID)
	DiskDescription = g.Regex("DiskDescription", DiskDescRegex)

	SnapshotName      = g.Name("SnapshotName", SnapshotNameRegex, VolumeNameSize, "list", "status")
	VolumeName        = g.Name("VolumeName", VolumeNameRegex, VolumeNameSize, "list", "status")
	VolumeReplication = g.IntRange("Replication", 1, 3)
	VolumeSize        = g.VolumeSize("Size")
	VolumeResize      = g.VolumeSize("SizeAdd")

	VolumeTagName  = g.Name("VolumeTagName", VolumeTagNameRegex, VolumeNameSize)
	VolumeTagValue = g.Name("VolumeTagValue", VolumeTagValueRegex, VolumeNameSize)

	PlacementGroupName = g.Name("PlacementGroupName", PlacementGroupNameRegex, PlacementGroupNameSize, "list")
	FaultSetName       = PlacementGroupName
	VolumeTemplateName = g.Name("VolumeTemplateName", VolumeTemplateNameRegex, VolumeNameSize, "list")

	Bandwidth        = g.UnlimitedInt("Bandwidth", 0, "-")
	IOPS             = g.UnlimitedInt("IOPS", 0, "-")
	AttachmentRights = g.OneOf("AttachmentRights", "rw", "ro")
	AttachmentPos    = g.IntRange("AttachmentPos", 0, MaxClientDisk)

	ObjectState = g.NamedEnum("ObjectState", []string{
		"OBJECT_UNDEF", "OBJECT_OK", "OBJECT_OUTDATED", "OBJECT_IN_RECOVERY",
		"OBJECT_WAITING_FOR_VERSION", "OBJECT_WAITING_FOR_DISK", "OBJECT_DATA_NOT_PRESENT",
		"OBJECT_DATA_LOST", "OBJECT_WAINING_FOR_CHAIN", "OBJECT_WAIT_IDLE",
	}, 0)

	RemoteLocationName = g.Name("RemoteLocationName", RemoteLocationNameRegex, RemoteLocationNameSize, "list")
	GlobalVolumeID     = g.Regex("Global Volume Id", `[a-z0-9]+\.[a-z0-9]\.[a-z0-9]+$`)
	LocationID         = g.Regex("Global Location Id", `[a-z0-9]+$`)

	ISCSIID     = g.IntRange("iSCSIId", 0, 0x0fff)
	ISCSIName   = g.Regex("iSCSIName", ISCSINameRegex)
	ISCSIPGName = g.Regex("iSCSIPGName", ISCSIPGNameRegex)

	// VolumeOrSnapshot names either kind of object.
	VolumeOrSnapshot = g.Either(VolumeName, SnapshotName)

	// Tags are short name/value pairs stored with volumes and snapshots.
	Tags = g.Optional(g.MapOf(VolumeTagName, VolumeTagValue))
)

// ObjectStateOK is the ObjectState of a healthy object.
const ObjectStateOK = "OBJECT_OK"

// maybe and internal keep the field lists readable.
func maybe(t g.Typed) g.Type    { return g.Optional(t) }
func internal(t g.Typed) g.Type { return g.Internal(t) }

// flag is a boolean defaulting to false.
func flag() g.Type { return g.WithDefault(g.Bool(), false) }

func listOf(t g.Typed) g.Type   { return g.ListOf(t) }
func setOf(t g.Typed) g.Type    { return g.SetOf(t) }
func mapOf(k, v g.Typed) g.Type { return g.MapOf(k, v) }
