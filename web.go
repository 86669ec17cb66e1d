package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// webSurface is what the handlers need from the printer.
type webSurface interface {
	printSurface
	PrintChar(r rune) error
	IsConnected() bool
}

// newWebHandler builds the HTTP mux for the local web typewriter:
// the single-page UI, line and character printing, printer status
// and the shortcut list. The handler shares the one Printer with the
// CLI; the Printer's own lock is the single-writer queue.
func newWebHandler(p webSurface) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"connected": p.IsConnected()})
	})

	mux.HandleFunc("/shortcuts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"shortcuts": listShortcuts()})
	})

	mux.HandleFunc("/print", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := dispatch(req.Text, p)
		writeJSON(w, map[string]any{
			"printed": resp.Printed,
			"message": resp.Message,
			"error":   resp.Err,
		})
	})

	mux.HandleFunc("/char", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Char string `json:"char"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Char != "" {
			ch, _ := utf8.DecodeRuneInString(req.Char)
			if err := p.PrintChar(ch); err != nil {
				writeJSON(w, map[string]any{"error": true, "message": err.Error()})
				return
			}
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	return mux
}

// runWeb serves the web UI, blocking until the server fails.
func runWeb(p *Printer, cfg *config) error {
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newWebHandler(p),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logVerbose("web UI starting on http://%s", addr)
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Thermal Typer</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    min-height: 100vh; background: #2d1f14;
    font-family: "Courier New", monospace;
    display: flex; flex-direction: column; align-items: center;
    padding: 2rem 1rem 4rem;
  }
  .platen {
    width: 100%; max-width: 620px; background: #f5f0e8;
    box-shadow: 0 8px 32px rgba(0,0,0,0.5); border-radius: 2px;
  }
  .header {
    padding: 1.2rem 2rem 0.8rem; border-bottom: 2px solid #e8e0cc;
    display: flex; justify-content: space-between; align-items: baseline;
  }
  .header h1 { font-size: 1.1rem; letter-spacing: 0.3em; text-transform: uppercase; }
  .header .model { font-size: 0.72rem; color: #6b5d4f; }
  .status-bar {
    padding: 0.4rem 2rem; background: #e8e0cc; font-size: 0.72rem;
    color: #6b5d4f; display: flex; align-items: center; gap: 0.5rem;
  }
  .dot { width: 7px; height: 7px; border-radius: 50%; background: #888; }
  .dot.online { background: #4a7c4a; }
  .dot.offline { background: #8b2222; }
  .paper {
    padding: 1.5rem 2.5rem; min-height: 220px; max-height: 340px;
    overflow-y: auto; font-size: 0.95rem; line-height: 1.8;
  }
  .log-line { white-space: pre-wrap; word-break: break-word; min-height: 1.8em; }
  .log-line.meta { color: #6b5d4f; font-style: italic; font-size: 0.8rem; }
  .log-line.error { color: #8b2222; }
  .composer { border-top: 2px solid #e8e0cc; padding: 1rem 2rem 1.2rem; background: #e8e0cc; }
  .input-row { display: flex; gap: 0.6rem; align-items: flex-end; }
  #msg {
    flex: 1; background: #f5f0e8; border: 1px solid #b0a088;
    padding: 0.55rem 0.8rem; font-family: inherit; font-size: 0.95rem;
    resize: none; min-height: 2.6rem; outline: none;
  }
  .key-btn {
    background: #d4c9b8; border: 1px solid #b0a088; border-radius: 3px;
    padding: 0.5rem 1.1rem; font-family: inherit; font-size: 0.85rem;
    cursor: pointer; box-shadow: 0 3px 0 #a8987f; white-space: nowrap;
  }
  .key-btn:active { transform: translateY(2px); box-shadow: 0 1px 0 #a8987f; }
  .key-btn.cut { color: #8b2222; }
  .shortcuts { padding: 0.6rem 2rem 1rem; border-top: 1px solid #c4b89a; }
  .shortcuts summary { font-size: 0.72rem; color: #6b5d4f; cursor: pointer; text-transform: uppercase; }
  .chips { display: flex; flex-wrap: wrap; gap: 0.4rem; margin-top: 0.6rem; }
  .chip {
    font-size: 0.72rem; padding: 2px 10px; border: 1px solid #c4b89a;
    border-radius: 20px; color: #6b5d4f; cursor: pointer; background: #e8e0cc;
  }
</style>
</head>
<body>
<div class="platen">
  <div class="header">
    <h1>Thermal Typer</h1>
    <span class="model">Epson TM-T88V</span>
  </div>
  <div class="status-bar">
    <span class="dot" id="dot"></span>
    <span id="status-text">Connecting...</span>
  </div>
  <div class="paper" id="paper">
    <div class="log-line meta">- session started -</div>
  </div>
  <div class="composer">
    <div class="input-row">
      <textarea id="msg" rows="1" placeholder="type something..."></textarea>
      <button class="key-btn" onclick="sendLine()">Print</button>
      <button class="key-btn cut" onclick="doCut()">Cut</button>
    </div>
  </div>
  <details class="shortcuts">
    <summary>Shortcuts</summary>
    <div class="chips" id="chips"></div>
  </details>
</div>
<script>
const paper = document.getElementById('paper');
const msgEl = document.getElementById('msg');

function appendLog(text, cls) {
  const el = document.createElement('div');
  el.className = 'log-line' + (cls ? ' ' + cls : '');
  el.textContent = text;
  paper.appendChild(el);
  paper.scrollTop = paper.scrollHeight;
}

async function pollStatus() {
  try {
    const r = await fetch('/status');
    const d = await r.json();
    document.getElementById('dot').className = 'dot ' + (d.connected ? 'online' : 'offline');
    document.getElementById('status-text').textContent = d.connected ? 'Printer online' : 'Printer offline';
  } catch (e) {}
}
setInterval(pollStatus, 4000);
pollStatus();

async function loadShortcuts() {
  try {
    const r = await fetch('/shortcuts');
    const d = await r.json();
    const chips = document.getElementById('chips');
    chips.innerHTML = '';
    d.shortcuts.forEach(s => {
      const c = document.createElement('span');
      c.className = 'chip';
      c.textContent = '!' + s;
      c.onclick = () => send('!' + s);
      chips.appendChild(c);
    });
  } catch (e) {}
}
loadShortcuts();

async function send(text) {
  if (!text.trim()) return;
  try {
    const r = await fetch('/print', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({text})
    });
    const d = await r.json();
    if (d.error) {
      appendLog('error: ' + d.message, 'error');
    } else if (d.message && !d.printed) {
      appendLog(d.message, 'meta');
    } else {
      appendLog(text);
    }
  } catch (e) {
    appendLog('network error', 'error');
  }
  setTimeout(pollStatus, 500);
}

async function sendLine() {
  const text = msgEl.value.trim();
  if (!text) return;
  msgEl.value = '';
  await send(text);
  msgEl.focus();
}

async function doCut() {
  appendLog('- cut -', 'meta');
  await send('cut');
}

msgEl.addEventListener('keydown', async (e) => {
  if (e.key === 'Enter' && !e.shiftKey) {
    e.preventDefault();
    await sendLine();
  }
});
</script>
</body>
</html>`
