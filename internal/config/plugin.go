package config

import "strings"

// PluginID is the key the host stores this plugin's settings under.
const PluginID = "GalleryOrganizer"

// HWAccel is the hardware acceleration preference for video work.
type HWAccel string

const (
	HWAccelCPU   HWAccel = "CPU"
	HWAccelNVENC HWAccel = "NVENC"
	HWAccelQSV   HWAccel = "QSV"
	HWAccelVAAPI HWAccel = "VAAPI"
)

// HWAccelValues lists the accepted hardware acceleration settings.
func HWAccelValues() []HWAccel {
	return []HWAccel{HWAccelCPU, HWAccelNVENC, HWAccelQSV, HWAccelVAAPI}
}

// ParseHWAccel returns the matching preference, falling back to CPU for any
// value outside the accepted set. Matching is exact.
func ParseHWAccel(value any) HWAccel {
	str, ok := value.(string)
	if !ok {
		return HWAccelCPU
	}
	for _, candidate := range HWAccelValues() {
		if string(candidate) == str {
			return candidate
		}
	}
	return HWAccelCPU
}

// PluginSettings are the options the host persists for this plugin.
type PluginSettings struct {
	VideoHWAccel HWAccel
}

// PluginSettingsFrom interprets the host's plugin configuration map, which is
// keyed by plugin ID.
func PluginSettingsFrom(plugins map[string]any) PluginSettings {
	settings := PluginSettings{VideoHWAccel: HWAccelCPU}
	if plugins == nil {
		return settings
	}
	raw, ok := plugins[PluginID].(map[string]any)
	if !ok {
		return settings
	}
	settings.VideoHWAccel = ParseHWAccel(raw["video_hwaccel"])
	return settings
}

// String renders the settings for logs and status output.
func (s PluginSettings) String() string {
	return "video_hwaccel=" + strings.TrimSpace(string(s.VideoHWAccel))
}
