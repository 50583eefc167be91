// services/citation_service.go
package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"golang.org/x/net/publicsuffix"
	"mvdan.cc/xurls/v2"
)

type citationService struct{}

// NewCitationService creates the citation extractor/classifier.
func NewCitationService() CitationService {
	return &citationService{}
}

var (
	// Markdown pass: [label](url), capturing the full URL including path and
	// query. Bare-URL regexes that stop at path separators truncate these,
	// which is why the markdown pass runs first.
	markdownLinkURLRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

	// Strict() only matches URLs carrying a scheme, and captures full paths.
	strictURLRe = xurls.Strict()
)

// Image extensions to skip
var imageExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".webp",
}

// ExtractCitations finds URLs in raw (pre-normalization) response text via
// two passes: markdown link syntax, then bare URLs. Each URL is cleaned
// (www. prefix and utm_* params removed, trailing slash trimmed) and
// duplicates within one response are dropped. Extraction is purely
// syntactic; nothing is fetched.
func (c *citationService) ExtractCitations(rawText string) []models.Citation {
	citations := make([]models.Citation, 0)
	if rawText == "" {
		return citations
	}

	var rawURLs []string
	for _, groups := range markdownLinkURLRe.FindAllStringSubmatch(rawText, -1) {
		rawURLs = append(rawURLs, groups[1])
	}
	rawURLs = append(rawURLs, strictURLRe.FindAllString(rawText, -1)...)

	seenURLs := make(map[string]bool)
	for _, match := range rawURLs {
		cleaned, ok := cleanCitationURL(match)
		if !ok || seenURLs[cleaned] {
			continue
		}
		if isImageURL(cleaned) {
			continue
		}
		seenURLs[cleaned] = true
		citations = append(citations, models.Citation{
			URL:        strings.TrimSpace(match),
			CleanedURL: cleaned,
			Type:       models.CitationTypeEarned, // default until classified
		})
	}

	return citations
}

// Classify labels a citation "brand" when its host's base domain (eTLD+1)
// matches a tracked brand's domain, "earned" otherwise. Only the host is
// consulted: a brand name inside a third-party URL's path must stay
// "earned". Unparseable URLs classify as "earned", the safer default.
func (c *citationService) Classify(citation models.Citation, brands []models.Brand) (string, string) {
	target := citation.CleanedURL
	if target == "" {
		target = citation.URL
	}

	citationBase, err := baseDomain(target)
	if err != nil {
		return models.CitationTypeEarned, ""
	}

	for _, brand := range brands {
		if brand.Domain == "" {
			continue
		}
		brandBase, err := baseDomain(brand.Domain)
		if err != nil {
			continue
		}
		if strings.EqualFold(citationBase, brandBase) {
			return models.CitationTypeBrand, brand.Name
		}
	}
	return models.CitationTypeEarned, ""
}

// ExtractAndClassify is the pipeline entry point: extraction followed by
// per-citation classification against the brand list.
func (c *citationService) ExtractAndClassify(rawText string, brands []models.Brand) []models.Citation {
	citations := c.ExtractCitations(rawText)
	for i := range citations {
		citationType, ownerBrand := c.Classify(citations[i], brands)
		citations[i].Type = citationType
		citations[i].OwnerBrand = ownerBrand
	}
	return citations
}

// cleanCitationURL normalizes a matched URL: http/https only, www. prefix
// stripped, utm_* tracking params removed, trailing slash trimmed.
func cleanCitationURL(match string) (string, bool) {
	urlStr := strings.TrimSpace(match)

	u, err := url.Parse(urlStr)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false // skip mailto:, ftp:, etc.
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host == "" {
		return "", false
	}
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}
	u.Host = host

	q := u.Query()
	for param := range q {
		if strings.HasPrefix(strings.ToLower(param), "utm_") {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()

	finalURL := strings.TrimRight(u.String(), "/")
	if finalURL == "" {
		return "", false
	}
	return finalURL, true
}

func isImageURL(cleaned string) bool {
	u, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	pathLower := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(pathLower, ext) {
			return true
		}
	}
	return false
}

// baseDomain extracts the base domain (eTLD+1) from a URL or bare domain
// using publicsuffix.
func baseDomain(urlStr string) (string, error) {
	// Handle URLs without protocol
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %s: %w", urlStr, err)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("no hostname found in URL: %s", urlStr)
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return "", fmt.Errorf("failed to get base domain for %s: %w", hostname, err)
	}
	return base, nil
}
