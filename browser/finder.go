package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ChromeEnv overrides the chrome executable location
const ChromeEnv = "LOCATORK_CHROME"

var chromeCandidates = map[string][]string{
	"windows": {
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
	},
	"darwin": {
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	},
	"linux": {
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
	},
}

// FindChrome on the FS, returns the executable and the directory profiles are created in
func FindChrome() (string, string, error) {
	tmp := filepath.Join(os.TempDir(), "locatork")
	if runtime.GOOS == "windows" {
		tmp = "C:\\Temp\\locatork\\"
	}

	if chrome := os.Getenv(ChromeEnv); chrome != "" {
		return chrome, tmp, nil
	}
	for _, chrome := range chromeCandidates[runtime.GOOS] {
		if _, err := os.Stat(chrome); err == nil {
			return chrome, tmp, nil
		}
	}
	for _, name := range []string{"chromium-browser", "chromium", "google-chrome"} {
		if chrome, err := exec.LookPath(name); err == nil {
			return chrome, tmp, nil
		}
	}
	return "", tmp, ErrChromeNotFound
}

// ChromeAvailable reports whether FindChrome can locate a browser
func ChromeAvailable() bool {
	_, _, err := FindChrome()
	return err == nil
}
