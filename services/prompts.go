package services

import (
	"fmt"
	"strings"
)

// SystemPrompt is the designer persona shared by every generation and
// enhancement call.
const SystemPrompt = `You are a world-class web developer and designer with expertise in creating professional, modern websites.

Your specialties include:
- Modern responsive web design
- Professional UI/UX principles
- Clean, semantic HTML5
- Advanced CSS3 with modern layouts (Grid, Flexbox)
- Professional color schemes and typography
- Business-ready components and sections
- Performance optimization
- Accessibility best practices

When generating websites, create:
- Professional, business-grade designs
- Mobile-first responsive layouts
- Modern color palettes with proper contrast
- Clean typography with proper hierarchy
- Interactive elements and smooth animations
- Semantic HTML structure
- Optimized CSS with modern techniques
- Complete, ready-to-use websites

Always generate complete, production-ready code that looks professional and modern.`

const baseRequirements = `
IMPORTANT REQUIREMENTS:
1. Generate COMPLETE, PROFESSIONAL website files
2. Create separate HTML, CSS, and JS files
3. Use modern, responsive design principles
4. Include professional color schemes and typography
5. Make it mobile-first responsive
6. Add smooth animations and interactions
7. Ensure accessibility (ARIA labels, semantic HTML)
8. Use modern CSS Grid and Flexbox
9. Include proper meta tags for SEO
10. Make it production-ready

STRUCTURE YOUR RESPONSE EXACTLY AS:
=== FILE: index.html ===
[Complete HTML content here]

=== FILE: styles.css ===
[Complete CSS content here]

=== FILE: script.js ===
[Complete JavaScript content here]

=== END FILES ===
`

var typeRequirements = map[string]string{
	"landing": `
Create a professional LANDING PAGE with:
- Hero section with compelling headline and CTA
- Features/benefits section
- Testimonials/social proof
- About section
- Contact/CTA section
- Professional footer
`,
	"business": `
Create a professional BUSINESS WEBSITE with:
- Corporate header with navigation
- Hero banner with company value proposition
- Services/products section
- About us section
- Team section
- Contact information
- Professional corporate footer
`,
	"portfolio": `
Create a professional PORTFOLIO WEBSITE with:
- Personal/professional header
- Hero section with introduction
- Portfolio/work showcase gallery
- Skills and expertise section
- About/bio section
- Contact form and information
`,
	"ecommerce": `
Create a professional E-COMMERCE WEBSITE with:
- Product header with cart/search
- Hero section with featured products
- Product categories grid
- Featured/bestseller products
- Customer testimonials
- Footer with links and info
`,
	"blog": `
Create a professional BLOG WEBSITE with:
- Blog header with navigation
- Hero section with latest post
- Recent posts grid/list
- Categories and tags
- About the author section
- Subscription/newsletter signup
`,
}

// BuildGenerationPrompt wraps the user's prompt with the type-specific
// section list and the file-protocol instructions the parser depends on.
func BuildGenerationPrompt(prompt, websiteType string) string {
	specific, ok := typeRequirements[websiteType]
	if !ok {
		specific = typeRequirements["landing"]
	}

	return fmt.Sprintf(`
%s

%s

%s

Remember: This needs to be PROFESSIONAL, MODERN, and BUSINESS-READY. Think Fortune 500 company quality.
`, prompt, specific, baseRequirements)
}

// BuildEnhancementPrompt asks the model to modify an existing site rather
// than start from scratch, using the same file protocol.
func BuildEnhancementPrompt(currentHTML, instruction string) string {
	return fmt.Sprintf(`Here is the current main HTML file of an existing website:

%s

Apply the following modification to the website:

%s

Regenerate the COMPLETE website with the modification applied. Keep everything that was not asked to change.
%s`, currentHTML, instruction, baseRequirements)
}

// BuildSuggestionsPrompt asks the model for improvement ideas as JSON so the
// frontend can render them as cards.
func BuildSuggestionsPrompt(currentHTML string) string {
	return fmt.Sprintf(`Here is the current main HTML file of a generated website:

%s

Suggest 4 to 6 concrete improvements for this website. Respond with ONLY a JSON array, no prose, where each element has this shape:
{"type": "visual|content|interactive|seo", "title": "...", "description": "...", "impact": "high|medium|low", "icon": "an emoji"}`, currentHTML)
}

// KnownWebsiteTypes returns the type ids the prompt builder understands.
func KnownWebsiteTypes() []string {
	types := make([]string, 0, len(typeRequirements))
	for id := range typeRequirements {
		types = append(types, id)
	}
	return types
}

// IsKnownWebsiteType reports whether the prompt builder has requirements for
// the given type id.
func IsKnownWebsiteType(websiteType string) bool {
	_, ok := typeRequirements[websiteType]
	return ok
}

// truncate limits s to max runes for inclusion in fallback pages and logs.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.ToValidUTF8(s[:max], "") + "..."
}
