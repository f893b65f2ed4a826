package install

import "fmt"

// Bootloader selects the boot manager and where it is installed.
type Bootloader struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// Locale holds language, time and keyboard settings.
type Locale struct {
	Locale     []string `json:"locale"`
	Timezone   string   `json:"timezone"`
	VirtKeymap string   `json:"virtkeymap"`
	X11Keymap  string   `json:"x11keymap"`
}

// DefaultLocale returns a locale with an empty, non-nil locale list.
func DefaultLocale() Locale {
	return Locale{Locale: []string{}}
}

// Networking holds the host identity.
type Networking struct {
	Hostname string `json:"hostname"`
	IPv6     bool   `json:"ipv6"`
}

// Params tunes the build: cores and parallel jobs, and whether to keep
// intermediate artifacts.
type Params struct {
	Cores int32 `json:"cores"`
	Jobs  int32 `json:"jobs"`
	Keep  bool  `json:"keep"`
}

func decodeSection(name string, v Value, dst interface{}) error {
	if err := v.Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// BootloaderSection decodes the bootloader section. Unset yields the zero value.
func (c *Configuration) BootloaderSection() (Bootloader, error) {
	var b Bootloader
	err := decodeSection("bootloader", c.Bootloader, &b)
	return b, err
}

// SetBootloader replaces the bootloader section.
func (c *Configuration) SetBootloader(b Bootloader) error {
	v, err := NewValue(b)
	if err != nil {
		return err
	}
	c.Bootloader = v
	return nil
}

// LocaleSection decodes the locale section. Unset yields DefaultLocale.
func (c *Configuration) LocaleSection() (Locale, error) {
	l := DefaultLocale()
	err := decodeSection("locale", c.Locale, &l)
	if l.Locale == nil {
		l.Locale = []string{}
	}
	return l, err
}

// SetLocale replaces the locale section.
func (c *Configuration) SetLocale(l Locale) error {
	if l.Locale == nil {
		l.Locale = []string{}
	}
	v, err := NewValue(l)
	if err != nil {
		return err
	}
	c.Locale = v
	return nil
}

// NetworkingSection decodes the networking section.
func (c *Configuration) NetworkingSection() (Networking, error) {
	var n Networking
	err := decodeSection("networking", c.Networking, &n)
	return n, err
}

// SetNetworking replaces the networking section.
func (c *Configuration) SetNetworking(n Networking) error {
	v, err := NewValue(n)
	if err != nil {
		return err
	}
	c.Networking = v
	return nil
}

// ParamsSection decodes the build parameters.
func (c *Configuration) ParamsSection() (Params, error) {
	var p Params
	err := decodeSection("params", c.Params, &p)
	return p, err
}

// SetParams replaces the build parameters.
func (c *Configuration) SetParams(p Params) error {
	v, err := NewValue(p)
	if err != nil {
		return err
	}
	c.Params = v
	return nil
}
