package features

import "fmt"

//PresetName selects a complete record template for the form
type PresetName string

const (
	//PresetCustom leaves the form as the user typed it
	PresetCustom PresetName = "custom"

	//PresetNormal is an ordinary logged in HTTP session
	PresetNormal PresetName = "normal"

	//PresetAttack is an ICMP echo flood against a rejecting host
	PresetAttack PresetName = "attack"
)

var presets = map[PresetName]Record{
	PresetNormal: {
		Duration:               0,
		ProtocolType:           "tcp",
		Service:                "http",
		Flag:                   "SF",
		SrcBytes:               181,
		DstBytes:               5450,
		LoggedIn:               1,
		Count:                  8,
		SrvCount:               8,
		SameSrvRate:            1.0,
		DstHostCount:           9,
		DstHostSrvCount:        9,
		DstHostSameSrvRate:     1.0,
		DstHostSameSrcPortRate: 0.11,
	},
	PresetAttack: {
		Duration:               0,
		ProtocolType:           "icmp",
		Service:                "ecr_i",
		Flag:                   "REJ",
		SrcBytes:               0,
		DstBytes:               0,
		Count:                  511,
		SrvCount:               511,
		RerrorRate:             1.0,
		SrvRerrorRate:          1.0,
		SameSrvRate:            1.0,
		DstHostCount:           255,
		DstHostSrvCount:        255,
		DstHostSameSrvRate:     1.0,
		DstHostSameSrcPortRate: 1.0,
		DstHostRerrorRate:      1.0,
		DstHostSrvRerrorRate:   1.0,
	},
}

// Preset returns the complete record for name. PresetCustom and unknown
// names return false, meaning the form must not be overwritten.
func Preset(name PresetName) (Record, bool) {
	rec, ok := presets[name]
	return rec, ok
}

//ParsePreset validates a preset name given on the command line
func ParsePreset(name string) (PresetName, error) {
	switch PresetName(name) {
	case PresetCustom, PresetNormal, PresetAttack:
		return PresetName(name), nil
	case "":
		return PresetCustom, nil
	}
	return "", fmt.Errorf("unknown preset %q, expected normal, attack or custom", name)
}
