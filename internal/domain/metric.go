package domain

// Well-known score metrics.
const (
	MetricOverall         = "overall"
	MetricSecurity        = "security"
	MetricPerformance     = "performance"
	MetricReadability     = "readability"
	MetricMaintainability = "maintainability"
)

// MaxScore is the ceiling of the score scale.
const MaxScore = 10

// Gradient is a two-stop colour gradient in hex notation.
type Gradient struct {
	From string
	To   string
}

// MetricStyle is how a metric is drawn.
type MetricStyle struct {
	Gradient Gradient
	Icon     string
}

var metricGradients = map[string]Gradient{
	MetricOverall:         {From: "#6366f1", To: "#4f46e5"},
	MetricSecurity:        {From: "#f87171", To: "#ef4444"},
	MetricPerformance:     {From: "#a78bfa", To: "#8b5cf6"},
	MetricReadability:     {From: "#60a5fa", To: "#3b82f6"},
	MetricMaintainability: {From: "#34d399", To: "#10b981"},
}

var metricIcons = map[string]string{
	MetricOverall:         "★",
	MetricSecurity:        "⛨",
	MetricPerformance:     "⚡",
	MetricReadability:     "◉",
	MetricMaintainability: "↗",
}

// StyleForMetric returns the gradient and icon for a metric. Unknown metrics
// use the overall gradient and no icon.
func StyleForMetric(metric string) MetricStyle {
	g, ok := metricGradients[metric]
	if !ok {
		g = metricGradients[MetricOverall]
	}
	return MetricStyle{Gradient: g, Icon: metricIcons[metric]}
}
