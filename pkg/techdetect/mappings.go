package techdetect

// aliasTable maps raw fingerprint names to the human-readable names used in
// reports. Names without an entry pass through unchanged.
var aliasTable = map[string]string{
	// Cloud hosting providers
	"Amazon EC2":              "AWS",
	"Amazon S3":               "AWS S3",
	"Amazon CloudFront":       "AWS CloudFront",
	"AWS Certificate Manager": "AWS",
	"Amazon ALB":              "AWS",
	"Amazon ELB":              "AWS",
	"AWS Elastic Beanstalk":   "AWS Elastic Beanstalk",
	"Amazon Web Services":     "AWS",
	"Google Cloud":            "Google Cloud Platform (GCP)",
	"Google Cloud CDN":        "GCP",
	"Google App Engine":       "GCP App Engine",
	"Firebase":                "Firebase (GCP)",
	"Microsoft Azure":         "Microsoft Azure",
	"Azure CDN":               "Azure CDN",
	"DigitalOcean":            "DigitalOcean",
	"Linode":                  "Linode",
	"Vultr":                   "Vultr",
	"Hetzner":                 "Hetzner Cloud",
	"Oracle Cloud":            "Oracle Cloud",

	// Modern hosting platforms
	"Vercel":             "Vercel",
	"Netlify":            "Netlify",
	"Cloudflare":         "Cloudflare",
	"Cloudflare Pages":   "Cloudflare Pages",
	"Cloudflare Workers": "Cloudflare Workers",
	"Railway":            "Railway",
	"Render":             "Render",
	"Fly.io":             "Fly.io",
	"Heroku":             "Heroku",
	"PlanetScale":        "PlanetScale",
	"Supabase":           "Supabase",
	"Neon":               "Neon",

	// CDN providers
	"Cloudflare CDN": "Cloudflare",
	"Fastly":         "Fastly",
	"Akamai":         "Akamai",
	"BunnyCDN":       "BunnyCDN",
	"KeyCDN":         "KeyCDN",

	// Traditional hosting
	"GoDaddy":    "GoDaddy",
	"Bluehost":   "Bluehost",
	"HostGator":  "HostGator",
	"SiteGround": "SiteGround",
	"DreamHost":  "DreamHost",
	"Namecheap":  "Namecheap",

	// Specialized platforms
	"GitHub Pages": "GitHub Pages",
	"GitLab Pages": "GitLab Pages",
	"WordPress":    "WordPress",
	"Wix":          "Wix",
	"Squarespace":  "Squarespace",
	"Shopify":      "Shopify",
	"Webflow":      "Webflow",

	// Web servers
	"Nginx":         "Nginx",
	"Apache":        "Apache",
	"Microsoft IIS": "Microsoft IIS",
	"LiteSpeed":     "LiteSpeed",
	"Caddy":         "Caddy",

	// Frameworks
	"Next.js":       "Next.js",
	"React":         "React",
	"Vue.js":        "Vue.js",
	"Angular":       "Angular",
	"Svelte":        "Svelte",
	"Nuxt.js":       "Nuxt.js",
	"Gatsby":        "Gatsby",
	"Django":        "Django",
	"Flask":         "Flask",
	"Ruby on Rails": "Ruby on Rails",
	"Laravel":       "Laravel",
	"Express":       "Express.js",
	"FastAPI":       "FastAPI",
}

// categoryEntry is one step of the classification walk. Order matters: a name
// is assigned to the first category whose list matches it.
type categoryEntry struct {
	name  string
	techs []string
}

// categoryTable classifies mapped technology names. Matching is substring in
// either direction, first match wins. Existing reports depend on these exact
// semantics.
var categoryTable = []categoryEntry{
	{"hosting", []string{
		"AWS", "GCP", "Azure", "Vercel", "Netlify", "Cloudflare", "Railway", "Render",
		"Fly.io", "Heroku", "DigitalOcean", "Linode", "Vultr", "Hetzner", "Oracle Cloud",
		"GitHub Pages", "GitLab Pages", "WordPress", "Wix", "Squarespace", "Shopify", "Webflow",
		"GoDaddy", "Bluehost", "HostGator", "SiteGround", "DreamHost", "Namecheap",
	}},
	{"cdn", []string{
		"Cloudflare", "Fastly", "Akamai", "BunnyCDN", "KeyCDN", "AWS CloudFront", "Azure CDN",
	}},
	{"server", []string{
		"Nginx", "Apache", "Microsoft IIS", "LiteSpeed", "Caddy",
	}},
	{"framework", []string{
		"Next.js", "React", "Vue.js", "Angular", "Svelte", "Nuxt.js", "Gatsby",
		"Django", "Flask", "Ruby on Rails", "Laravel", "Express.js", "FastAPI",
	}},
	{"database", []string{
		"PlanetScale", "Supabase", "Neon", "Firebase",
	}},
}
