package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// maxVariantRefs caps both the variants listed in the prompt and the
// references accepted back from the model
const maxVariantRefs = 20

// HTTPExplainer calls an OpenAI-compatible chat-completions endpoint. One
// attempt per request, bounded by the configured timeout; a timeout,
// non-success status or malformed body all degrade to the fixed fallback.
type HTTPExplainer struct {
	cfg        domain.ExplanationConfig
	httpClient *http.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewHTTPExplainer creates the HTTP-backed explainer
func NewHTTPExplainer(cfg domain.ExplanationConfig, logger *logrus.Logger) *HTTPExplainer {
	rl := cfg.RateLimit
	if rl <= 0 {
		rl = 5
	}
	return &HTTPExplainer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rateLimit:  rate.NewLimiter(rate.Limit(rl), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "explanation-service",
			MaxRequests: 1,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		logger: logger,
	}
}

// Name implements Explainer
func (h *HTTPExplainer) Name() string { return "http" }

// Explain implements Explainer
func (h *HTTPExplainer) Explain(ctx context.Context, req Request) domain.Explanation {
	body, err := h.breaker.Execute(func() (interface{}, error) {
		return h.complete(ctx, req)
	})
	if err != nil {
		h.logger.WithError(err).Warn("Explanation service degraded, using fallback")
		return fallbackExplanation()
	}

	parsed := extractJSON(body.(string))
	if parsed == nil {
		h.logger.Warn("Explanation response carried no JSON object, using fallback")
		return fallbackExplanation()
	}
	return buildExplanation(parsed)
}

// chat-completions wire types
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs the single chat-completions call and returns the raw
// message content
func (h *HTTPExplainer) complete(ctx context.Context, req Request) (string, error) {
	if err := h.rateLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       h.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(req)}},
		Temperature: h.cfg.Temperature,
		MaxTokens:   h.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("explanation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("explanation service returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("explanation response carried no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// buildPrompt renders the read-only context plus the mode-specific output
// instruction
func buildPrompt(req Request) string {
	var variants strings.Builder
	for i, v := range req.DetectedVariants {
		if i >= maxVariantRefs {
			break
		}
		fmt.Fprintf(&variants, "  - %s %s %s\n", v.Gene, v.RS, v.Genotype)
	}
	variantList := strings.TrimRight(variants.String(), "\n")
	if variantList == "" {
		variantList = "  (none)"
	}

	instruction := clinicianInstruction
	if req.Mode == ModeResearch {
		instruction = researchInstruction
	}

	return fmt.Sprintf(`You are a clinical pharmacogenomics educator. Provide an explanation ONLY. Do not change or suggest any risk label, severity, or recommendation.

Context (do not modify):
- Drug: %s
- Gene: %s
- Phenotype: %s
- Risk label: %s
- Severity: %s
- Guideline: %s
- Detected variants:
%s

%s`, req.Drug, req.Gene, req.Phenotype, req.RiskLabel, req.Severity, req.GuidelineReference, variantList, instruction)
}

const clinicianInstruction = `Respond with a single JSON object with exactly these keys (no other text):
- "summary": 1-2 short sentences: what this means for the patient and what to do.
- "mechanism_explanation": 1-2 concise sentences on how the gene affects the drug (action-focused).
- "variant_references": array of short strings referencing the variants (e.g. ["rs123 (CYP2C19)", ...]). Use only variants listed above.
- "clinical_rationale": 1-2 sentences on why the recommendation follows from the genotype.
Keep all text brief and actionable. Output only valid JSON.`

const researchInstruction = `Respond with a single JSON object with exactly these keys (no other text):
- "summary": 2-4 sentences summarizing the result and implications.
- "mechanism_explanation": 3-6 sentences: detailed molecular mechanism, variant impact on enzyme activity, and pharmacokinetic relevance.
- "variant_references": array of short strings referencing the variants (e.g. ["rs123 (CYP2C19)", ...]). Use only variants listed above.
- "clinical_rationale": 2-4 sentences on why the recommendation follows from the genotype and evidence.
Output only valid JSON.`

var (
	codeBlockRe  = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)
)

// extractJSON pulls the first JSON object out of model output, unwrapping a
// fenced code block first when present. Returns nil when nothing parses.
func extractJSON(text string) map[string]interface{} {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	obj := jsonObjectRe.FindString(text)
	if obj == "" {
		return nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil
	}
	return parsed
}

// buildExplanation fills missing or empty fields with their fixed defaults
func buildExplanation(parsed map[string]interface{}) domain.Explanation {
	summary := strings.TrimSpace(stringField(parsed, "summary"))
	if summary == "" {
		summary = fallbackSummary
	}
	mechanism := strings.TrimSpace(stringField(parsed, "mechanism_explanation"))
	if mechanism == "" {
		mechanism = defaultMechanism
	}
	rationale := strings.TrimSpace(stringField(parsed, "clinical_rationale"))
	if rationale == "" {
		rationale = defaultRationale
	}

	refs := []string{}
	if raw, ok := parsed["variant_references"].([]interface{}); ok {
		for _, r := range raw {
			s := strings.TrimSpace(fmt.Sprintf("%v", r))
			if s == "" || s == "<nil>" {
				continue
			}
			refs = append(refs, s)
			if len(refs) >= maxVariantRefs {
				break
			}
		}
	}

	return domain.Explanation{
		Summary:              summary,
		MechanismExplanation: mechanism,
		VariantReferences:    refs,
		ClinicalRationale:    rationale,
	}
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

var _ Explainer = (*HTTPExplainer)(nil)
