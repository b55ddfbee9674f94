package api

import "net/http"

const indexHTML = `<html>
  <head>
    <title>AI Interview Coach</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
  </head>
  <body>
    <h1>AI Interview Coach API</h1>
    <p>Backend API for the interview coaching platform.</p>
    <h2>Endpoints:</h2>
    <ul>
      <li><a href="/api/health">GET /api/health</a></li>
      <li>POST /api/chat</li>
      <li>POST /api/session/init</li>
      <li>GET /api/session/history</li>
      <li>POST /api/session/clear</li>
    </ul>
  </body>
</html>
`

// Index serves a minimal service index page at the root path.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}
