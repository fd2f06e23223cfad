package labels

import (
	"strings"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/pkg/core/model"
)

// UnknownLabel is shown for references that do not resolve
const UnknownLabel = "Unknown"

// NeutralColor is used for pods without a palette entry
const NeutralColor = "#9CA3AF"

// DefaultPrefixes are the two-letter codes of the known pods
var DefaultPrefixes = map[string]string{
	"pod-ww": "WW",
	"pod-ps": "PS",
	"pod-tp": "TP",
	"pod-ss": "SS",
	"pod-la": "LA",
	"pod-qa": "QA",
}

// DefaultColors is the display palette of the known pods
var DefaultColors = map[string]string{
	"pod-ww": "#6366F1",
	"pod-ps": "#10B981",
	"pod-tp": "#F59E0B",
	"pod-ss": "#0EA5E9",
	"pod-la": "#EC4899",
	"pod-qa": "#8B5CF6",
}

// Labeler resolves pod and work item references into display strings
type Labeler struct {
	pods     map[string]model.Pod
	prefixes map[string]string
	colors   map[string]string
}

// NewLabeler builds a Labeler over the given pods. prefixes and colors are
// merged over the defaults and may be nil.
func NewLabeler(pods []model.Pod, prefixes, colors map[string]string) *Labeler {
	l := &Labeler{
		pods:     make(map[string]model.Pod, len(pods)),
		prefixes: make(map[string]string, len(DefaultPrefixes)+len(prefixes)),
		colors:   make(map[string]string, len(DefaultColors)+len(colors)),
	}

	for _, p := range pods {
		l.pods[p.ID] = p
	}
	for id, prefix := range DefaultPrefixes {
		l.prefixes[id] = prefix
	}
	for id, prefix := range prefixes {
		l.prefixes[id] = prefix
	}
	for id, color := range DefaultColors {
		l.colors[id] = color
	}
	for id, color := range colors {
		l.colors[id] = color
	}

	return l
}

// PodPrefix returns the pod's two-letter code, falling back to the first two
// characters of the ID upper-cased
func (l *Labeler) PodPrefix(podID string) string {
	if prefix, ok := l.prefixes[podID]; ok {
		return prefix
	}
	runes := []rune(podID)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// WorkItemLabel formats a work item as "<pod prefix>: <name>"
func (l *Labeler) WorkItemLabel(wi model.WorkItem) string {
	return l.PodPrefix(wi.PodID) + ": " + wi.Name
}

// WorkItemLabelByID looks the work item up by ID, returning "Unknown" if it does not exist
func (l *Labeler) WorkItemLabelByID(workItems []model.WorkItem, workItemID string) string {
	for _, wi := range workItems {
		if wi.ID == workItemID {
			return l.WorkItemLabel(wi)
		}
	}
	return UnknownLabel
}

// PodName returns the pod's name, or its ID if the pod is unknown
func (l *Labeler) PodName(podID string) string {
	if podID == "" {
		return UnknownLabel
	}
	if pod, ok := l.pods[podID]; ok {
		return pod.Name
	}
	return podID
}

// PodColor returns the pod's palette color, or the neutral gray
func (l *Labeler) PodColor(podID string) string {
	if color, ok := l.colors[podID]; ok {
		return color
	}
	return NeutralColor
}
