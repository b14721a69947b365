package handlers

import (
	"net/http"
	"strings"

	"wewillshine/internal/models"
	"wewillshine/internal/security"
)

// DetectBrowser names the browser in a User-Agent. Order matters: most
// browsers also claim to be Chrome or Safari.
func DetectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "SamsungBrowser"):
		return "Samsung Browser"
	case strings.Contains(ua, "Opera"), strings.Contains(ua, "OPR"):
		return "Opera"
	case strings.Contains(ua, "Trident"):
		return "Internet Explorer"
	case strings.Contains(ua, "Edge"), strings.Contains(ua, "Edg/"):
		return "Edge"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	}
	return "Unknown"
}

// DetectOS names the operating system in a User-Agent
func DetectOS(ua string) string {
	switch {
	case strings.Contains(ua, "Windows NT 10.0"):
		return "Windows 10"
	case strings.Contains(ua, "Windows NT 6.3"):
		return "Windows 8.1"
	case strings.Contains(ua, "Windows NT 6.2"):
		return "Windows 8"
	case strings.Contains(ua, "Windows NT 6.1"):
		return "Windows 7"
	case strings.Contains(ua, "Windows"):
		return "Windows"
	// iOS agents say "like Mac OS X"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		return "iOS"
	case strings.Contains(ua, "Mac OS X"):
		return "macOS"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	}
	return "Unknown"
}

// DetectDeviceType classifies a User-Agent as mobile, tablet or desktop
func DetectDeviceType(ua string) string {
	switch {
	case strings.Contains(ua, "Mobile"), strings.Contains(ua, "Android"):
		return "mobile"
	case strings.Contains(ua, "Tablet"), strings.Contains(ua, "iPad"):
		return "tablet"
	}
	return "desktop"
}

// DeviceFromRequest describes the client that sent r
func DeviceFromRequest(r *http.Request) models.DeviceInfo {
	ua := r.UserAgent()
	return models.DeviceInfo{
		Browser:    DetectBrowser(ua),
		OS:         DetectOS(ua),
		DeviceType: DetectDeviceType(ua),
		IPAddress:  security.GetClientIP(r),
		UserAgent:  ua,
	}
}
