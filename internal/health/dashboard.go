package health

import (
	"fmt"
)

// RenderDashboardHTML returns the HTML status page for GET /.
func RenderDashboardHTML(health CollectResult) string {
	headline := "All Systems Operational"
	if health.Status != "ok" {
		headline = "System Issues Detected"
	}

	lastReqMethod := "-"
	lastReqPath := "-"
	if m, ok := health.Traffic.LastRequest.(map[string]interface{}); ok {
		if v, ok := m["method"].(string); ok {
			lastReqMethod = v
		}
		if v, ok := m["path"].(string); ok {
			lastReqPath = v
		}
	}

	depRows := ""
	for _, name := range []string{"database", "redis", "stripe"} {
		dep, ok := health.Dependencies[name]
		if !ok {
			continue
		}
		cls := "err"
		if dep.Status == "connected" || dep.Status == "reachable" {
			cls = "ok"
		}
		ping := "?"
		if dep.PingMs != nil {
			ping = fmt.Sprint(dep.PingMs)
		}
		depRows += fmt.Sprintf(`<div class="row"><span>%s</span><span class="pill %s">%s · %s ms</span></div>`,
			name, cls, dep.Status, ping)
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>OEMLink · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --brand: #1a4d8f; --dark: #122b4d; --bg: #f6f8fa; --muted: #64748b; }
    body { background: var(--bg); color: var(--dark); font-family: -apple-system, 'Segoe UI', sans-serif; margin: 0; display: flex; align-items: center; justify-content: center; min-height: 100vh; }
    .container { width: 100%; max-width: 900px; padding: 20px; }
    h1 { font-size: clamp(28px, 4vw, 44px); font-weight: 800; text-align: center; color: var(--brand); }
    .card { background: white; border-radius: 16px; box-shadow: 0 10px 40px rgba(18, 43, 77, 0.08); padding: 10px 0; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); }
    .col { padding: 30px; border-right: 1px solid rgba(0,0,0,0.05); }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 800; letter-spacing: 2px; color: var(--muted); margin-bottom: 18px; }
    .big { font-size: 34px; font-weight: 800; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 7px 0; border-bottom: 1px solid rgba(0,0,0,0.04); font-size: 14px; font-weight: 600; }
    .row:last-child { border-bottom: none; }
    .pill { padding: 3px 10px; border-radius: 8px; font-size: 11px; font-weight: 800; }
    .ok { background: rgba(26, 77, 143, 0.08); color: var(--brand); }
    .err { background: rgba(239, 68, 68, 0.08); color: #ef4444; }
    .footer { padding: 14px 30px; font-family: monospace; font-size: 13px; color: var(--muted); border-top: 1px solid rgba(0,0,0,0.05); display: flex; justify-content: space-between; }
    @media (max-width: 760px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; border-bottom: 1px solid rgba(0,0,0,0.05); } }
  </style>
</head>
<body>
  <div class="container">
    <h1>` + headline + `</h1>
    <div class="card">
      <div class="grid">
        <div class="col">
          <div class="label">Traffic</div>
          <div class="big">` + fmt.Sprint(health.Traffic.TotalRequests) + `</div>
          <div class="row"><span>Successful</span><span>` + fmt.Sprint(health.Traffic.SuccessCount) + `</span></div>
          <div class="row"><span>Failed</span><span>` + fmt.Sprint(health.Traffic.FailedCount) + `</span></div>
          <div class="row"><span>Success Rate</span><span>` + health.Traffic.SuccessRate + `%</span></div>
          <div class="row"><span>Avg Latency</span><span>` + fmt.Sprint(health.Traffic.AvgResponseTime) + `ms</span></div>
        </div>
        <div class="col">
          <div class="label">Runtime</div>
          <div class="big">` + fmt.Sprint(health.Runtime.UptimeSeconds) + `s</div>
          <div class="row"><span>Heap Used</span><span>` + fmt.Sprint(health.Runtime.Memory.HeapUsed) + ` MB</span></div>
          <div class="row"><span>Memory</span><span>` + fmt.Sprint(health.Runtime.Memory.RSS) + ` MB</span></div>
          <div class="row"><span>Platform</span><span>` + health.Runtime.Platform + `</span></div>
          <div class="row"><span>Go</span><span>` + health.Runtime.GoVersion + `</span></div>
        </div>
        <div class="col">
          <div class="label">Connectivity</div>
          ` + depRows + `
        </div>
      </div>
      <div class="footer">
        <span>LAST INBOUND ` + lastReqMethod + `</span>
        <span>` + lastReqPath + `</span>
      </div>
    </div>
  </div>
  <script>setTimeout(() => location.reload(), 30000);</script>
</body>
</html>`
}
