package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsDefaultWhenUnset(t *testing.T) {
	conf := Default()

	b, err := conf.BootloaderSection()
	require.NoError(t, err)
	assert.Equal(t, Bootloader{}, b)

	l, err := conf.LocaleSection()
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale(), l)
	assert.NotNil(t, l.Locale)

	n, err := conf.NetworkingSection()
	require.NoError(t, err)
	assert.Equal(t, Networking{}, n)

	p, err := conf.ParamsSection()
	require.NoError(t, err)
	assert.Equal(t, Params{}, p)
}

func TestSectionsFromDocument(t *testing.T) {
	conf, err := Decode([]byte(`{
	  "bootloader": {"type": "systemd-boot", "location": "/boot/efi"},
	  "locale": {"locale": ["de_DE.UTF-8 UTF-8"], "timezone": "Europe/Vienna", "virtkeymap": "de", "x11keymap": "de"},
	  "networking": {"hostname": "nas", "ipv6": true},
	  "params": {"cores": 8, "jobs": 4, "keep": true}
	}`))
	require.NoError(t, err)

	b, err := conf.BootloaderSection()
	require.NoError(t, err)
	assert.Equal(t, Bootloader{Type: "systemd-boot", Location: "/boot/efi"}, b)

	l, err := conf.LocaleSection()
	require.NoError(t, err)
	assert.Equal(t, Locale{Locale: []string{"de_DE.UTF-8 UTF-8"}, Timezone: "Europe/Vienna", VirtKeymap: "de", X11Keymap: "de"}, l)

	n, err := conf.NetworkingSection()
	require.NoError(t, err)
	assert.Equal(t, Networking{Hostname: "nas", IPv6: true}, n)

	p, err := conf.ParamsSection()
	require.NoError(t, err)
	assert.Equal(t, Params{Cores: 8, Jobs: 4, Keep: true}, p)
}

func TestSectionsWrongShape(t *testing.T) {
	conf := Default()
	conf.Networking = MustValue("just-a-hostname")

	_, err := conf.NetworkingSection()
	assert.ErrorContains(t, err, "decoding networking")
}

func TestSetSections(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.SetBootloader(Bootloader{Type: "grub", Location: "/dev/sda"}))
	require.NoError(t, conf.SetLocale(Locale{Timezone: "UTC"}))
	require.NoError(t, conf.SetNetworking(Networking{Hostname: "twl"}))
	require.NoError(t, conf.SetParams(Params{Cores: 2}))

	assert.JSONEq(t, `{"type":"grub","location":"/dev/sda"}`, conf.Bootloader.String())
	assert.JSONEq(t, `{"locale":[],"timezone":"UTC","virtkeymap":"","x11keymap":""}`, conf.Locale.String())
	assert.JSONEq(t, `{"hostname":"twl","ipv6":false}`, conf.Networking.String())
	assert.JSONEq(t, `{"cores":2,"jobs":0,"keep":false}`, conf.Params.String())
}
