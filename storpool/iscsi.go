package storpool

import (
	g "github.com/storpool/spschema/dsl"
)

// iSCSI configuration and controller state

var ISCSIExport = g.Record("iSCSIExport").
	Field("portalGroup", ISCSIPGName, "The portal group exporting this volume.").
	Field("target", ISCSIName, "The target exporting this volume.").
	MustBuild()

var ISCSIInitiator = g.Record("iSCSIInitiator").
	Doc(`
		name: The iSCSI initiator's IQN.
		username: The username to authenticate the initiator by.
		secret: The password to authenticate the initiator with.
		nets: The networks this initiator will contact the iSCSI cluster on.
	`).
	Field("name", ISCSIName, "").
	Field("username", g.String(), "").
	Field("secret", g.String(), "").
	Field("nets", listOf(g.String()), "").
	Field("exports", listOf(ISCSIExport), "The volumes exported to this initiator.").
	MustBuild()

var ISCSIPGNetwork = g.Record("iSCSIPGNetwork").
	Field("address", g.String(), "The dotted-quad network address.").
	Field("prefix", g.Int(), "The network's CIDR prefix length.").
	MustBuild()

var ISCSIPortal = g.Record("iSCSIPortal").
	Field("controller", ISCSIID, "The StorPool iSCSI target service handling this portal.").
	Field("ip", g.String(), "The IP address for the portal.").
	Field("port", g.String(), "The TCP port for the portal.").
	MustBuild()

var ISCSIPortalGroup = g.Record("iSCSIPortalGroup").
	Doc(`
		name: The iSCSI portal group name.
		networks: The networks this portal group is accessible on.
		portals: The list of portals defined in this group.
	`).
	Field("name", ISCSIPGName, "").
	Field("networks", listOf(ISCSIPGNetwork), "").
	Field("portals", listOf(ISCSIPortal), "").
	MustBuild()

var ISCSITarget = g.Record("iSCSITarget").
	Doc(`
		currentControllerId: The StorPool iSCSI target service handling this target.
		name: The iSCSI name that the target is exposed as.
		volume: The name of the StorPool volume being exposed.
	`).
	Field("currentControllerId", g.Int(), "").
	Field("name", ISCSIName, "").
	Field("volume", VolumeName, "").
	MustBuild()

var ISCSIConfigData = g.Record("iSCSIConfigData").
	Doc(`
		baseName: The StorPool cluster's iSCSI base name.
		initiators: The iSCSI initiators allowed to access the cluster.
		portalGroups: The iSCSI portal groups defined for the cluster.
		targets: The iSCSI targets by volume.
	`).
	Field("baseName", ISCSIName, "").
	Field("initiators", mapOf(ISCSIID, ISCSIInitiator), "").
	Field("portalGroups", mapOf(g.Int(), ISCSIPortalGroup), "").
	Field("targets", mapOf(g.Int(), ISCSITarget), "").
	MustBuild()

var ISCSIConfig = g.Record("iSCSIConfig").
	Field("iscsi", ISCSIConfigData, "The actual configuration data.").
	MustBuild()

var ISCSICommandSetBaseName = g.Record("iSCSICommandSetBaseName").
	Field("name", ISCSIName, "The new StorPool cluster iSCSI base name.").
	MustBuild()

var ISCSICommandCreatePortalGroup = g.Record("iSCSICommandCreatePortalGroup").
	Field("name", ISCSIPGName, "The name of the iSCSI portal group to create.").
	MustBuild()

var ISCSICommandDeletePortalGroup = g.Record("iSCSICommandDeletePortalGroup").
	Field("name", ISCSIPGName, "The name of the iSCSI portal group to delete.").
	MustBuild()

var ISCSICommandPortalGroupAddNetwork = g.Record("iSCSICommandPortalGroupAddNetwork").
	Field("portalGroup", ISCSIPGName, "The name of the iSCSI portal group to modify.").
	Field("net", g.String(), "The x.x.x.x/n CIDR definition of the network to add.").
	MustBuild()

var ISCSICommandCreatePortal = g.Record("iSCSICommandCreatePortal").
	Doc(`
		portalGroup: The name of the iSCSI portal group to modify.
		controller: The StorPool iSCSI target service to handle this portal.
		ip: The IP address for the portal.
		port: The TCP port for the portal (default: 3260).
	`).
	Field("portalGroup", ISCSIPGName, "").
	Field("controller", ISCSIID, "").
	Field("ip", g.String(), "").
	Field("port", maybe(g.Int()), "").
	MustBuild()

var ISCSICommandDeletePortal = g.Record("iSCSICommandDeletePortal").
	Field("ip", g.String(), "The IP address for the portal to remove.").
	Field("port", maybe(g.Int()), "The TCP port for the portal (default: 3260).").
	MustBuild()

var ISCSICommandCreateTarget = g.Record("iSCSICommandCreateTarget").
	Field("volumeName", VolumeName, "The StorPool volume name to create an iSCSI target for.").
	MustBuild()

var ISCSICommandDeleteTarget = g.Record("iSCSICommandDeleteTarget").
	Field("volumeName", VolumeName, "The StorPool volume name to delete the iSCSI target for.").
	MustBuild()

var ISCSICommandCreateInitiator = g.Record("iSCSICommandCreateInitiator").
	Doc(`
		name: The name the initiator will use to connect.
		username: The username the initiator will authenticate as.
		secret: The password the initiator will authenticate with.
	`).
	Field("name", ISCSIName, "").
	Field("username", g.String(), "").
	Field("secret", g.String(), "").
	MustBuild()

var ISCSICommandDeleteInitiator = g.Record("iSCSICommandDeleteInitiator").
	Field("name", ISCSIName, "The name of the iSCSI initiator to delete.").
	MustBuild()

var ISCSICommandInitiatorAddNetwork = g.Record("iSCSICommandInitiatorAddNetwork").
	Field("initiator", ISCSIName, "The name of the iSCSI initiator to modify.").
	Field("net", g.String(), "The CIDR x.x.x.x/n definition of the network to add.").
	MustBuild()

var ISCSICommandExport = g.Record("iSCSICommandExport").
	Doc(`
		initiator: The name of the iSCSI initiator to allow access to the volume.
		portalGroup: The name of the iSCSI portal group to export the volume in.
		volumeName: The name of the volume to export.
	`).
	Field("initiator", ISCSIName, "").
	Field("portalGroup", ISCSIPGName, "").
	Field("volumeName", VolumeName, "").
	MustBuild()

var ISCSICommandExportDelete = g.Record("iSCSICommandExportDelete").
	Doc(`
		initiator: The name of the iSCSI initiator to revoke access to the volume from.
		portalGroup: The name of the iSCSI portal group to stop exporting the volume in.
		volumeName: The name of the exported volume.
	`).
	Field("initiator", ISCSIName, "").
	Field("portalGroup", ISCSIPGName, "").
	Field("volumeName", VolumeName, "").
	MustBuild()

// ISCSIConfigCommand holds one configuration change. Exactly one member
// is expected to be set; the server rejects anything else.
var ISCSIConfigCommand = g.Record("iSCSIConfigCommand").
	Doc(`
		setBaseName: Set the StorPool cluster's iSCSI base name.
		createPortalGroup: Create an iSCSI portal group.
		deletePortalGroup: Delete a previously created iSCSI portal group.
		portalGroupAddNetwork: Add a CIDR network specification to a portal group.
		createPortal: Create an iSCSI portal.
		deletePortal: Delete a previously created iSCSI portal.
		createTarget: Create an iSCSI target for a StorPool volume.
		deleteTarget: Delete the iSCSI target for a StorPool volume.
		createInitiator: Define an iSCSI initiator that will connect to the cluster.
		deleteInitiator: Delete an iSCSI initiator definition.
		initiatorAddNetwork: Define a network that an iSCSI initiator will connect to the cluster on.
		export: Export a StorPool volume (with an already created target) via iSCSI.
		exportDelete: Stop exporting a StorPool volume via iSCSI.
	`).
	Field("setBaseName", maybe(ISCSICommandSetBaseName), "").
	Field("createPortalGroup", maybe(ISCSICommandCreatePortalGroup), "").
	Field("deletePortalGroup", maybe(ISCSICommandDeletePortalGroup), "").
	Field("portalGroupAddNetwork", maybe(ISCSICommandPortalGroupAddNetwork), "").
	Field("createPortal", maybe(ISCSICommandCreatePortal), "").
	Field("deletePortal", maybe(ISCSICommandDeletePortal), "").
	Field("createTarget", maybe(ISCSICommandCreateTarget), "").
	Field("deleteTarget", maybe(ISCSICommandDeleteTarget), "").
	Field("createInitiator", maybe(ISCSICommandCreateInitiator), "").
	Field("deleteInitiator", maybe(ISCSICommandDeleteInitiator), "").
	Field("initiatorAddNetwork", maybe(ISCSICommandInitiatorAddNetwork), "").
	Field("export", maybe(ISCSICommandExport), "").
	Field("exportDelete", maybe(ISCSICommandExportDelete), "").
	MustBuild()

var ISCSIConfigChange = g.Record("iSCSIConfigChange").
	Field("commands", listOf(ISCSIConfigCommand), "The actual iSCSI configuration commands.").
	MustBuild()

// ISCSIControllersQuery narrows the controller queries to some target
// services. Without it every controller is asked.
var ISCSIControllersQuery = g.Record("iSCSIControllersQuery").
	Field("controllerIds", maybe(listOf(ISCSIID)), "The iSCSI target services to query.").
	MustBuild()

// ISCSIControllersReply is the per-controller state reported by the
// sessions and interfaces queries, keyed by controller id. The shape of
// each entry depends on the controller version and is passed through.
var ISCSIControllersReply = mapOf(ISCSIID, g.Any())
