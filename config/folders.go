package config

import "sync"

// FolderConfig maps each document category to its folder on the file store.
type FolderConfig struct {
	Root  string `json:"root"`   // shared parent of every category folder
	DMR   string `json:"dmr"`    // one sub-folder per product line, files named by part
	MSS   string `json:"mss"`    // flat
	PkgMI string `json:"pkg_mi"` // flat
	MfgMI string `json:"mfg_mi"` // flat
	QAS   string `json:"qas"`    // one sub-folder per revision family
	PSS   string `json:"pss"`    // flat
}

var Folders *FolderConfig
var folderConfigOnce sync.Once

// InitFolderConfig initializes the category folder layout.
func InitFolderConfig() {
	folderConfigOnce.Do(func() {
		Folders = &FolderConfig{
			Root:  getEnv("DOCUMENT_ROOT", "/Document Control/Document Control @ Busse/PDF Controlled Documents"),
			DMR:   getEnv("DMR_FOLDER", "Device Master Record (DMR) + Artwork"),
			MSS:   getEnv("MSS_FOLDER", "Machine Setup Sheet (MSS) PDF"),
			PkgMI: getEnv("PKG_MI_FOLDER", "PKG Manufacturing Instructions (MI) PDF"),
			MfgMI: getEnv("MFG_MI_FOLDER", "MFG Manufacturing Instructions (MI) PDF"),
			QAS:   getEnv("QAS_FOLDER", "Quality Assurance Specification (QAS, QAS-R) PDF"),
			PSS:   getEnv("PSS_FOLDER", "Post Sterilization Specification (PSS)"),
		}
	})
}

// Path joins the root with a category folder.
func (f *FolderConfig) Path(category string) string {
	return f.Root + "/" + category
}
