package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"irrigation_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

var templateFuncs = template.FuncMap{
	"lower": func(s models.WateringState) string { return strings.ToLower(string(s)) },
	"simulated": func(k models.SourceKind) bool {
		return k == models.SourceSimulated
	},
}

// dashboardPage renders the current snapshot server-side; the page then follows /ws.
func (h *Handler) dashboardPage(c *gin.Context) {
	d, err := h.services.Monitoring.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, "dashboard_render_failed", err)
		return
	}
	c.HTML(http.StatusOK, "dashboard", d)
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Irrigation dashboard</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.zone { border: 1px solid #ccc; border-radius: 6px; padding: 1em; margin-bottom: 1em; }
.status-on { color: #1a7f37; } .status-off { color: #555; } .status-blocked { color: #b42318; }
#alert-box { background: #fde8e8; color: #b42318; padding: .5em 1em; border-radius: 4px; }
#log-list { font-family: monospace; max-height: 20em; overflow-y: auto; }
</style>
</head>
<body>
<h1>Irrigation</h1>
<div id="alert-box"{{if not .Alert}} style="display:none"{{end}}>{{.Alert}}</div>
{{range .Zones}}
<div class="zone" id="zone-{{.ZoneID}}">
  <h2>Zone {{.ZoneID}}</h2>
  <div class="moisture-value">{{.PercentText}}</div>
  {{if not (simulated .Source)}}<div class="sensor-value">{{.SensorText}}</div>{{end}}
  <div class="moisture-label">{{.CategoryText}}</div>
  <div class="status-text status-{{lower .State}}">{{.StatusLabel}}</div>
  {{if simulated .Source}}<input type="range" min="0" max="100" value="{{.MoisturePercent}}" data-zone="{{.ZoneID}}" class="slider">{{end}}
  <button data-zone="{{.ZoneID}}" data-action="start">Start</button>
  <button data-zone="{{.ZoneID}}" data-action="stop">Stop</button>
</div>
{{end}}
<h2>Activity</h2>
<ul id="log-list">{{range .Logs}}<li>{{.Line}}</li>{{end}}</ul>
<script>
function call(method, path, body) {
  return fetch(path, {method: method, headers: {"Content-Type": "application/json"},
    body: body ? JSON.stringify(body) : undefined});
}
document.querySelectorAll("button[data-action]").forEach(function (b) {
  b.addEventListener("click", function () {
    call("POST", "/api/v1/zones/" + b.dataset.zone + "/" + b.dataset.action);
  });
});
document.querySelectorAll("input.slider").forEach(function (s) {
  s.addEventListener("input", function () {
    call("PUT", "/api/v1/zones/" + s.dataset.zone + "/moisture", {percent: parseInt(s.value, 10)});
  });
});
function render(d) {
  var alertBox = document.getElementById("alert-box");
  alertBox.style.display = d.alert ? "block" : "none";
  alertBox.textContent = d.alert || "";
  d.zones.forEach(function (z) {
    var el = document.getElementById("zone-" + z.zone_id);
    if (!el) return;
    el.querySelector(".moisture-value").textContent = z.percent_text;
    var sensor = el.querySelector(".sensor-value");
    if (sensor) sensor.textContent = z.sensor_text || "";
    el.querySelector(".moisture-label").textContent = z.category_text;
    var st = el.querySelector(".status-text");
    st.className = "status-text status-" + z.state.toLowerCase();
    st.textContent = z.status_label;
  });
  var list = document.getElementById("log-list");
  list.innerHTML = "";
  d.logs.forEach(function (l) {
    var li = document.createElement("li");
    li.textContent = l.line;
    list.appendChild(li);
  });
  list.scrollTop = list.scrollHeight;
}
(function connect() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "dashboard") render(msg.data);
  };
  ws.onclose = function () { setTimeout(connect, 2000); };
})();
</script>
</body>
</html>
`
