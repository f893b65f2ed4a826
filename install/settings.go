package install

import "encoding/json"

// DefaultBase is the distribution family targeted by the installer.
const DefaultBase = "arch"

// Configuration contains all the choices made for an installation.
//
// Sections other than Partition are kept as open values because their shape
// depends on the option picked in the UI; the typed views in sections.go
// decode the ones with a fixed schema.
type Configuration struct {
	Partition      Partition `json:"partition"`
	Bootloader     Value     `json:"bootloader"`
	Locale         Value     `json:"locale"`
	Networking     Value     `json:"networking"`
	Users          Value     `json:"users"`
	RootPass       Value     `json:"rootpass"`
	Desktop        Value     `json:"desktop"`
	Theme          Value     `json:"theme"`
	DisplayManager Value     `json:"displayManager"`
	Browser        Value     `json:"browser"`
	ExtraPackages  Value     `json:"extra_packages"`
	Kernel         Value     `json:"kernel"`
	Snapper        Value     `json:"snapper"`
	Zramd          Value     `json:"zramd"`
	Hardened       Value     `json:"hardened"`
	Flatpak        Value     `json:"flatpak"`
	Params         Value     `json:"params"`
	Terminal       Value     `json:"terminal"`

	// PackagesStore caches package metadata while computing selections.
	PackagesStore Value `json:"-"`
	// Base is the distribution family. Process internal.
	Base string `json:"-"`
}

// Default returns a configuration with every section unset.
func Default() Configuration {
	return Configuration{
		Partition: DefaultPartition(),
		Base:      DefaultBase,
	}
}

// UnmarshalJSON implements json.Unmarshaler. The internal fields are
// accepted on input so the UI can hand them back, but never written out.
func (c *Configuration) UnmarshalJSON(b []byte) error {
	type plain Configuration
	aux := struct {
		*plain
		PackagesStore *Value  `json:"packagesStore"`
		Base          *string `json:"base"`
	}{plain: (*plain)(c)}
	b, err := exactKeys(b, configurationKeys)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.PackagesStore != nil {
		c.PackagesStore = *aux.PackagesStore
	}
	if aux.Base != nil {
		c.Base = *aux.Base
	}
	return nil
}
