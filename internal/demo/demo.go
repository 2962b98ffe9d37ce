// Package demo provides a built-in, scripted line sequence for trying the
// dashboard without a real installation engine. It plays back two streams
// in order, mirroring what a real engine process produces: InstallLines,
// a representative modlist install, followed by PostInstallLines, the
// post-install configuration phase's free-text messages.
package demo

// InstallLines is a representative sequence of raw engine stdout lines
// covering initialization, download, extraction, validation, and install,
// in the same line grammar the classifier parses from a real engine
// (spec.md §4.1's bracketed-status, file-action-percent, and
// finished-downloading patterns).
var InstallLines = []string{
	"=== Initializing Jackify ===",
	"Starting modlist installation: Example Modlist",
	"=== Downloading Archives ===",
	"[1/6] Downloading SomeMod-Main.7z (0.0 MB/245.0 MB) - 0.0 MB/s",
	"[1/6] Downloading SomeMod-Main.7z (64.0 MB/245.0 MB) - 18.2 MB/s",
	"[1/6] Downloading SomeMod-Main.7z (148.0 MB/245.0 MB) - 21.6 MB/s",
	"[1/6] Downloading SomeMod-Main.7z (245.0 MB/245.0 MB) - 19.9 MB/s",
	"Finished downloading SomeMod-Main.7z. Hash: 9f2a1c",
	"[2/6] Downloading Another-Texture-Pack.7z (12.0 MB/88.0 MB) - 14.3 MB/s",
	"[2/6] Downloading Another-Texture-Pack.7z (88.0 MB/88.0 MB) - 15.1 MB/s",
	"Finished downloading Another-Texture-Pack.7z. Hash: 77bd40",
	"Downloading Example Modlist.wabbajack",
	"=== Extracting Archives ===",
	"Extracting: SomeMod-Main.7z (22%)",
	"Extracting: SomeMod-Main.7z (67%)",
	"Extracting: SomeMod-Main.7z (100%)",
	"Finished extracting SomeMod-Main.7z.",
	"Extracting: Another-Texture-Pack.7z (48%)",
	"Finished extracting Another-Texture-Pack.7z.",
	"=== Validating Files ===",
	"Validating: SomeMod-Main.esp (100%)",
	"Validating: SomeMod-Main.esm (100%)",
	"=== Installing Mods ===",
	"Installing: SomeMod-Main.esp (14%)",
	"Installing: SomeMod-Main.esp (61%)",
	"Installing: SomeMod-Main.esp (100%)",
	"Installing: texture_diffuse.dds (8%)",
	"Installing: texture_diffuse.dds (73%)",
	"Installing: texture_diffuse.dds (100%)",
	"Building BSA archive for Another-Texture-Pack",
	"=== Finalizing ===",
	"Installation completed successfully.",
}

// PostInstallLines is a representative sequence of free-text messages
// emitted during the Steam/Proton post-install configuration phase,
// matched by PostInstallStepMachine's keyword table.
var PostInstallLines = []string{
	"Starting automated Steam setup",
	"Creating Steam shortcut",
	"Steam shortcut created successfully",
	"Restarting Steam",
	"Steam restarted successfully",
	"Creating Proton prefix",
	"Verifying prefix creation",
	"Proton prefix created successfully",
	"Detecting actual AppID",
	"Steam configuration complete",
	"Installing Wine components",
	"Running winetricks vcrun2019",
	"Applying registry files",
	"Importing ModOrganizer.reg file",
	"Installing .NET fixes",
	"Enabling dotfiles",
	"Setting permissions",
	"Backing up ModOrganizer.ini",
	"Configuration completed successfully",
}
