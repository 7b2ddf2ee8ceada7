// Package preview serves the most recent capture on a localhost page
// so it can be eyeballed in a browser straight after the hotkey.
package preview

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const serverURL = "http://localhost:8765"

var (
	serverMutex   sync.Mutex
	server        *http.Server
	serverStarted bool

	imageMutex  sync.RWMutex
	latestImage string
	latestStamp int64
)

const pageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Claude Screenshot</title>
    <style>
        body {
            margin: 0;
            padding: 20px;
            background: #1e1e1e;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
        }
        img {
            max-width: 90vw;
            max-height: 85vh;
            box-shadow: 0 4px 20px rgba(0,0,0,0.5);
        }
        .waiting {
            color: #888;
            font-family: Arial;
            font-size: 24px;
            text-align: center;
        }
    </style>
</head>
<body>
    <div id="content"><div class="waiting">Waiting for a screenshot...<br>Press the capture hotkey.</div></div>
    <script>
        let stamp = 0;
        setInterval(async () => {
            const res = await fetch('/latest');
            const info = await res.json();
            if (info.stamp && info.stamp !== stamp) {
                stamp = info.stamp;
                document.getElementById('content').innerHTML =
                    '<img src="/image?ts=' + stamp + '">';
            }
        }, 1000);
    </script>
</body>
</html>`

// Start launches the preview server. Safe to call more than once and
// from any goroutine; the tray toggles it while the daemon runs.
func Start() {
	serverMutex.Lock()
	defer serverMutex.Unlock()
	if serverStarted {
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, pageHTML)
	})
	mux.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		imageMutex.RLock()
		stamp := latestStamp
		imageMutex.RUnlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"stamp":%d}`, stamp)
	})
	mux.HandleFunc("/image", func(w http.ResponseWriter, r *http.Request) {
		imageMutex.RLock()
		path := latestImage
		imageMutex.RUnlock()
		if path == "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	})

	server = &http.Server{Addr: "localhost:8765", Handler: mux}
	serverStarted = true

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warnf("Preview server error: %v", err)
		}
	}()
	log.Infof("Preview available at %s", serverURL)
}

// Show publishes a new capture to the preview page.
func Show(imagePath string) {
	if _, err := os.Stat(imagePath); err != nil {
		log.Warnf("Preview: cannot read %s: %v", imagePath, err)
		return
	}

	imageMutex.Lock()
	latestImage = imagePath
	latestStamp = time.Now().UnixNano()
	imageMutex.Unlock()
}

// Shutdown stops the preview server.
func Shutdown() {
	serverMutex.Lock()
	defer serverMutex.Unlock()
	if !serverStarted {
		return
	}
	serverStarted = false
	server.Close()
}

// OpenBrowser opens the preview page in the default browser.
func OpenBrowser() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", serverURL)
	case "darwin":
		cmd = exec.Command("open", serverURL)
	default:
		cmd = exec.Command("xdg-open", serverURL)
	}
	if err := cmd.Start(); err != nil {
		log.Warnf("Failed to open browser: %v", err)
	}
}
