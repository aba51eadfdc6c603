// Package prompt renders the bounded instruction document sent to the model:
// a size-capped excerpt of sampled log documents, the index field mapping,
// the fixed failure-scenario reference tables, and the four-stage task
// instructions.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kiranshivaraju/chaosplan/pkg/models"
)

// NoLogDataMarker is rendered in place of the document excerpt when the
// sampled index has no documents.
const NoLogDataMarker = "NO LOG DATA AVAILABLE FOR THIS INDEX"

// Stage markers of the four-stage output contract. The model is instructed
// to structure its answer around these.
const (
	stageTopology  = "Step 1 - Log & Topology Analysis"
	stageEntities  = "Step 2 - Entity Identification"
	stageCrossRef  = "Step 3 - Cross-Reference Failure Modes"
	stageChaosPlan = "Step 4 - Generate Chaos Plan (exactly 4 scenarios)"
)

// Prompt is a rendered instruction document plus build diagnostics.
// Truncated reports that trailing sampled documents were dropped to fit the
// byte budget; it is diagnostic, not an error.
type Prompt struct {
	Text         string
	Truncated    bool
	DocsIncluded int
}

// Builder renders prompts. MaxDocs caps how many sampled documents are
// considered; MaxBytes bounds the rendered prompt, with trailing documents
// dropped first and reference tables never dropped.
type Builder struct {
	maxDocs  int
	maxBytes int
}

// NewBuilder creates a prompt builder with the given document and byte caps.
func NewBuilder(maxDocs, maxBytes int) *Builder {
	return &Builder{maxDocs: maxDocs, maxBytes: maxBytes}
}

// docExcerpt is the condensed per-document view embedded in the prompt.
type docExcerpt struct {
	Doc       int    `json:"doc"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Level     string `json:"level"`
	Service   string `json:"service"`
}

// Build renders the prompt for one sampled index. It is pure: identical
// inputs yield byte-identical output.
func (b *Builder) Build(indexName string, bundle models.SampleBundle, opts models.ResolvedOptions) Prompt {
	excerpts := b.excerpts(bundle.Documents)

	head := renderHead(indexName, bundle, opts)
	tail := renderTail(bundle.Mapping, opts)

	// Budget for the document excerpt is whatever the fixed sections leave,
	// less a few bytes for the array brackets and section separator.
	budget := b.maxBytes - len(head) - len(tail) - len(docSectionHeader(len(bundle.Documents))) - len(docSectionFooter) - 8

	serialized := make([]string, 0, len(excerpts))
	used := 0
	truncated := false
	for _, e := range excerpts {
		enc, err := json.MarshalIndent(e, "  ", "  ")
		if err != nil {
			continue
		}
		// +4 covers the list indentation and separator around each entry.
		if used+len(enc)+4 > budget {
			truncated = true
			break
		}
		serialized = append(serialized, "  "+string(enc))
		used += len(enc) + 4
	}

	var docSection string
	switch {
	case len(excerpts) == 0:
		docSection = "## SAMPLE LOG DOCUMENTS\n" + NoLogDataMarker
	case len(serialized) == 0:
		docSection = docSectionHeader(len(bundle.Documents)) + "[]" + docSectionFooter
	default:
		docSection = docSectionHeader(len(bundle.Documents)) + "[\n" + strings.Join(serialized, ",\n") + "\n]" + docSectionFooter
	}

	var sb strings.Builder
	sb.Grow(len(head) + len(docSection) + len(tail) + 64)
	sb.WriteString(head)
	sb.WriteString(docSection)
	sb.WriteString("\n\n")
	sb.WriteString(tail)

	return Prompt{
		Text:         sb.String(),
		Truncated:    truncated,
		DocsIncluded: len(serialized),
	}
}

// excerpts condenses documents into the fields the model needs, preserving
// the received order (most recent first, per the sampler).
func (b *Builder) excerpts(docs []models.Document) []docExcerpt {
	n := len(docs)
	if n > b.maxDocs {
		n = b.maxDocs
	}

	out := make([]docExcerpt, 0, n)
	for i, doc := range docs[:n] {
		out = append(out, docExcerpt{
			Doc:       i + 1,
			Timestamp: firstString(doc, "@timestamp", "timestamp"),
			Message:   messageOf(doc),
			Level:     firstString(doc, "level", "severity"),
			Service:   firstString(doc, "service", "app"),
		})
	}
	return out
}

// messageOf pulls the log line out of a document, falling back to the whole
// serialized record when no message-like field exists.
func messageOf(doc models.Document) string {
	if m := firstString(doc, "message", "log"); m != "N/A" {
		return m
	}
	enc, err := json.Marshal(doc)
	if err != nil {
		return "N/A"
	}
	return string(enc)
}

func firstString(doc models.Document, keys ...string) string {
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			if v != nil {
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return "N/A"
}

func renderHead(indexName string, bundle models.SampleBundle, opts models.ResolvedOptions) string {
	var sb strings.Builder

	sb.WriteString("# CHAOS ENGINEERING PLAN GENERATION\n\n")

	if opts.Focus != models.FocusAll {
		fmt.Fprintf(&sb, "PRIORITY DIRECTIVE: Emphasize %s-related failure scenarios when ranking reference-table rows. All platforms and categories remain in scope; this directive reorders emphasis only.\n\n", opts.Focus)
	}

	sb.WriteString("## INDEX INFORMATION\n")
	fmt.Fprintf(&sb, "- Index Name: %s\n", indexName)
	fmt.Fprintf(&sb, "- Total Documents: %d\n", bundle.TotalHits)
	fmt.Fprintf(&sb, "- Query Time: %d ms\n\n", bundle.TookMS)

	fmt.Fprintf(&sb, "Focus Area: %s\n", opts.Focus)
	fmt.Fprintf(&sb, "Include Security Analysis: %t\n", opts.Security)
	fmt.Fprintf(&sb, "Include External Dependencies: %t\n\n", opts.IncludeExternal)

	return sb.String()
}

func docSectionHeader(fetched int) string {
	return fmt.Sprintf("## SAMPLE LOG DOCUMENTS (out of %d fetched)\n```json\n", fetched)
}

const docSectionFooter = "\n```"

func renderTail(mapping json.RawMessage, opts models.ResolvedOptions) string {
	var sb strings.Builder

	sb.WriteString("## INDEX FIELD MAPPING\n```json\n")
	if len(mapping) > 0 {
		sb.Write(mapping)
	} else {
		sb.WriteString("{}")
	}
	sb.WriteString("\n```\n\n")

	sb.WriteString(referenceTables)
	sb.WriteString("\n\n")
	sb.WriteString(taskInstructions(opts))

	return sb.String()
}

func taskInstructions(opts models.ResolvedOptions) string {
	var sb strings.Builder

	sb.WriteString(`## TASK
You are a Chaos Engineering SRE expert with 15 years of experience. Analyze the sampled logs and produce the following four stages in order.

### ` + stageTopology + `
Parse the provided application logs. Generate a textual service topology including IP addresses, port numbers, FQDNs, URLs and HTTP methods; all internal service communications (pod-to-pod, pod-to-database, service-to-service, middleware, storage); and dependency propagation paths (for example "Pod A -> Service B -> External DB"). Represent the topology as a clear textual graph and list the communication patterns and key observations.
`)
	if opts.IncludeExternal {
		sb.WriteString("Include all external communications: DNS, LDAP, MQ, third-party APIs and interfacing systems.\n")
	} else {
		sb.WriteString("Concentrate on internal communications; mention external dependencies only where they gate internal flows.\n")
	}

	sb.WriteString(`
### ` + stageEntities + `
For each node in the topology, identify whether it is a Kubernetes pod/service/stateful set, a VM (Linux/Windows), an AWS resource (EC2, EKS, RDS, Lambda, S3, ...), an Azure resource (VM, VMSS, WebApp, AKS, ...), or a GCP resource (Compute Engine, Cloud Storage, Cloud SQL, GKE, ...).

### ` + stageCrossRef + `
Use EXACT categories from the reference tables above. For each entity select valid chaos scenarios from the reference tables only, and generate a failure propagation mapping: root failure, propagation impact, blast radius, and recovery path.

### ` + stageChaosPlan + `
Produce exactly four scenarios covering component failures, stress conditions, network conditions, and internal/external dependencies. Each scenario must carry all ten fields:
1. Entity (with specific IPs/FQDNs/pod names)
2. Failure Type (from the reference tables only)
3. Hypothesis (expected breakage)
4. Steady State Metrics (latency, throughput, error rate baseline)
5. Failure Injection Method
6. Propagation Path (downstream dependency failures)
7. Blast Radius Analysis (impact scope)
8. Rollback / Abort Criteria
9. Observability Hooks (metrics, logs, alerts to monitor)
10. Resiliency Goal (test validation purpose)

## CRITICAL RULES
- Use only the provided reference scenarios; invent nothing.
- Capture ALL internal communications the logs reveal.
- Show multi-level propagation (entity failure -> cascading impact).
- Treat this as a deliverable for an SRE and Risk Review Board.
- Include configured replica counts and scale-down targets where visible.
- Be specific: include IPs, FQDNs and pod names where available.
`)
	if opts.Security {
		sb.WriteString("- Identify reliability AND security hotspots with remedial recommendations.\n")
	}
	sb.WriteString("\nTARGET OUTPUT: under 16384 tokens, comprehensive and actionable for an SRE team. Stick to the plan; omit filler.\n")

	return sb.String()
}
