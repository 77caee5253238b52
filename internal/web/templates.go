package web

import (
	"html/template"
	"log"
	"net/http"
)

func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("error rendering template %s: %v", tmpl.Name(), err)
	}
}

var (
	loginTmpl   = template.Must(template.New("login").Parse(loginHTML))
	homeTmpl    = template.Must(template.New("home").Parse(pageHead + navHTML + homeHTML + pageFoot))
	historyTmpl = template.Must(template.New("history").Parse(pageHead + navHTML + historyHTML + pageFoot))
	statsTmpl   = template.Must(template.New("stats").Parse(pageHead + navHTML + statsHTML + pageFoot))
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Text Rewriter</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f5f6f8; color: #333; }
        .container { max-width: 860px; margin: 0 auto; padding: 24px; }
        nav { display: flex; align-items: center; gap: 16px; padding: 12px 24px; background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
        nav .title { font-weight: 600; margin-right: auto; }
        nav a { color: #2196F3; text-decoration: none; }
        .card { background: #fff; border-radius: 12px; padding: 16px; margin-bottom: 16px; box-shadow: 0 2px 4px rgba(0,0,0,0.05); }
        textarea { width: 100%; min-height: 150px; font-size: 16px; border: 1px solid #e0e0e0; border-radius: 8px; padding: 8px; box-sizing: border-box; }
        button { background: #2196F3; color: #fff; border: none; border-radius: 8px; padding: 10px 20px; font-size: 15px; cursor: pointer; }
        button.danger { background: #e53935; }
        .error { color: #c62828; margin: 8px 0; }
        .stat-number { font-size: 32px; font-weight: bold; color: #2196F3; }
        .stat-label { color: #666; }
        .stat-row { display: flex; gap: 16px; }
        .stat-row .card { flex: 1; text-align: center; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #eee; }
        .muted { color: #888; }
        .ts { color: #2196F3; font-weight: 600; }
    </style>
</head>
<body>
`

const navHTML = `<nav>
    <span class="title">🤖 AI Text Rewriter</span>
    <a href="/">Rewrite</a>
    <a href="/history">History</a>
    <a href="/stats">Stats</a>
    <form method="post" action="/logout"><button type="submit">Logout</button></form>
</nav>
<div class="container">
`

const pageFoot = `</div>
</body>
</html>
`

const loginHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Login - AI Text Rewriter</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", sans-serif; background: #f5f6f8; }
        .login { max-width: 360px; margin: 100px auto; padding: 24px; background: #fff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
        input { width: 100%; padding: 8px; margin: 6px 0 14px; border: 1px solid #e0e0e0; border-radius: 8px; box-sizing: border-box; }
        button { width: 100%; background: #2196F3; color: #fff; border: none; border-radius: 8px; padding: 10px; font-size: 15px; cursor: pointer; }
        .error { color: #c62828; }
    </style>
</head>
<body>
    <div class="login">
        <h3>🔐 Login Required</h3>
        {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
        <form method="post" action="/login">
            <label>Username</label>
            <input type="text" name="username" autofocus>
            <label>Password</label>
            <input type="password" name="password">
            <button type="submit">Login</button>
        </form>
    </div>
</body>
</html>
`

const homeHTML = `<div class="card">
    <form method="post" action="/rewrite">
        <p><strong>Original Text</strong> <span class="muted">(rewritten into conversational {{.Language}})</span></p>
        <textarea name="text" placeholder="Enter the text you want to rewrite...">{{.Input}}</textarea>
        {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
        <p><button type="submit">✨ Rewrite Text</button></p>
    </form>
</div>
{{if .Result}}
<div class="card">
    <p><strong>Rewritten Text</strong></p>
    <textarea readonly>{{.Result}}</textarea>
</div>
{{end}}
`

const historyHTML = `<div class="card">
    <h2>📚 Rewrite History</h2>
    <p class="muted">Your previous text rewrites, most recent first.</p>
</div>
{{if .Entries}}
    {{range .Entries}}
    <div class="card">
        <p class="ts">🕒 {{.Timestamp}} <span class="muted">({{.CharCount}} characters)</span></p>
        <p><strong>Original:</strong></p>
        <textarea readonly>{{.Original}}</textarea>
        <p><strong>Rewritten:</strong></p>
        <textarea readonly>{{.Rewritten}}</textarea>
    </div>
    {{end}}
    <form method="post" action="/history/clear">
        <button type="submit" class="danger">🗑️ Clear All History</button>
    </form>
{{else}}
<div class="card">
    <p>No history available yet. Your rewritten texts will appear here once you start using the rewriter.</p>
</div>
{{end}}
`

const statsHTML = `<div class="card">
    <h2>📊 Usage Statistics</h2>
    <p class="muted">Last updated: {{.Usage.LastUpdated}}</p>
</div>
<div class="stat-row">
    <div class="card">
        <div class="stat-label">Total Rewrites</div>
        <div class="stat-number">{{.Usage.TotalRewrites}}</div>
    </div>
    <div class="card">
        <div class="stat-label">Total Characters</div>
        <div class="stat-number">{{.Usage.TotalCharacters}}</div>
    </div>
    <div class="card">
        <div class="stat-label">Average Text Length</div>
        <div class="stat-number">{{printf "%.0f" .Usage.AvgTextLength}}</div>
    </div>
</div>
<div class="card">
    <h3>Daily Usage (last 7 days)</h3>
    <table>
        <tr><th>Date</th><th>Rewrites</th></tr>
        {{range .Series}}
        <tr><td>{{.Date}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>
</div>
`
