// Package static embeds the browser assets served under /static/.
package static

import "embed"

//go:embed onboard.js signin.js
var FS embed.FS
