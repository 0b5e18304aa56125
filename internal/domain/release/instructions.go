package release

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RenderInstructions produces the store upload steps for a finished build.
func RenderInstructions(result *BuildResult) string {
	var sb strings.Builder

	artifact := filepath.Base(result.Artifact)

	switch result.Platform {
	case PlatformAndroid:
		sb.WriteString("# Play Console upload\n\n")
		fmt.Fprintf(&sb, "Artifact: `%s`\n\n", artifact)
		sb.WriteString("1. Open the Play Console and select the Samia Tarot app.\n")
		sb.WriteString("2. Go to Release > Production > Create new release.\n")
		fmt.Fprintf(&sb, "3. Upload `%s` as the app bundle.\n", artifact)
		sb.WriteString("4. Fill in release notes and roll out to the internal track first.\n")
		sb.WriteString("5. Promote to production once the internal track passes review.\n")
	case PlatformIOS:
		sb.WriteString("# App Store Connect upload\n\n")
		fmt.Fprintf(&sb, "Artifact: `%s`\n\n", artifact)
		sb.WriteString("1. Open Transporter (or run `xcrun altool --upload-app`).\n")
		fmt.Fprintf(&sb, "2. Upload `%s` with the distribution certificate used for the archive.\n", artifact)
		sb.WriteString("3. In App Store Connect, attach the build to the next version.\n")
		sb.WriteString("4. Submit for TestFlight review before the production submission.\n")
	default:
		fmt.Fprintf(&sb, "# Upload instructions\n\nArtifact: `%s`\n", artifact)
	}

	fmt.Fprintf(&sb, "\nBuild log: `%s`\n", result.LogPath)

	return sb.String()
}
