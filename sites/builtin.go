package sites

import (
	"regexp"
	"strings"
	"time"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/dateparse"
)

// NewBuiltin returns a registry preloaded with the builtin site
// configurations. Builtin configs are validated at registration, so a
// failure here is a programming error.
func NewBuiltin() *Registry {
	r := NewRegistry()
	for _, cfg := range builtinConfigs() {
		if err := r.Register(cfg); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinConfigs() []*scraper.SiteConfig {
	return []*scraper.SiteConfig{
		{
			Key:                "bbc",
			Name:               "BBC News",
			URL:                "https://www.bbc.com/news",
			ContainerSelectors: []string{`div[data-testid="dundee-card"]`, ".gs-c-promo", ".media-list__item"},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(`h2[data-testid="card-headline"]`, ".gs-c-promo-heading__title")},
				{Name: scraper.FieldLink, Spec: scraper.Sel(`a[data-testid="internal-link"]`, "a.gs-c-promo-heading")},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(`p[data-testid="card-description"]`, ".gs-c-promo-summary")},
				{Name: scraper.FieldDate, Spec: scraper.Sel(`span[data-testid="card-metadata-lastupdated"]`, "time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(`span[data-testid="card-metadata-tag"]`)},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".byline")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			DateParser:       scraper.DateParserFunc(parseBBCDate),
			PostProcessor:    scraper.PostProcessorFunc(processBBCArticle),
			RemoveDuplicates: true,
		},
		{
			Key:                "cnn",
			Name:               "CNN",
			URL:                "https://www.cnn.com",
			ContainerSelectors: []string{".container__item", ".card", ".story-card"},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(".container__headline", ".card__headline", "h3", "h4")},
				{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldTitle)},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".container__text", ".card__text", ".summary", "p")},
				{Name: scraper.FieldDate, Spec: scraper.Sel("time", ".container__timestamp", ".card__timestamp")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".container__label", ".card__label", ".section")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".byline", ".author")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			PostProcessor:    scraper.PostProcessorFunc(processCNNArticle),
			RemoveDuplicates: true,
		},
		{
			Key:                "reuters",
			Name:               "Reuters",
			URL:                "https://www.reuters.com",
			ContainerSelectors: []string{".story-card", `[data-testid="story-card"]`},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(".story-card-heading__heading", ".article-heading", "h3")},
				{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldTitle)},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".story-card-description", ".article-description", "p")},
				{Name: scraper.FieldDate, Spec: scraper.Sel(".story-card-timestamp", "time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".story-card-section", ".section")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".byline", ".author")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			RemoveDuplicates: true,
		},
		{
			Key:                "nytimes",
			Name:               "The New York Times",
			URL:                "https://www.nytimes.com",
			ContainerSelectors: []string{".story-wrapper", ".css-8atqhb"},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel("h2", "h3", ".headline")},
				{Name: scraper.FieldLink, Spec: scraper.Sel("a")},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".summary")},
				{Name: scraper.FieldDate, Spec: scraper.Sel("time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".section-name")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".byline")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			RemoveDuplicates: true,
		},
		{
			Key:                "guardian",
			Name:               "The Guardian",
			URL:                "https://www.theguardian.com/international",
			ContainerSelectors: []string{`[data-component="Card"]`},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(".fc-item__title")},
				{Name: scraper.FieldLink, Spec: scraper.Sel("a.fc-item__link")},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".fc-item__standfirst")},
				{Name: scraper.FieldDate, Spec: scraper.Sel("time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".fc-sublink__title")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".fc-item__byline")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			RemoveDuplicates: true,
		},
		{
			Key:                "wsj",
			Name:               "Wall Street Journal",
			URL:                "https://www.wsj.com",
			ContainerSelectors: []string{".WSJTheme--story-item"},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel("h3.WSJTheme--headline")},
				{Name: scraper.FieldLink, Spec: scraper.Sel("a")},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".WSJTheme--summary")},
				{Name: scraper.FieldDate, Spec: scraper.Sel("time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".WSJTheme--category")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".author")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			RemoveDuplicates: true,
		},
		{
			Key:                "apnews",
			Name:               "Associated Press",
			URL:                "https://apnews.com",
			ContainerSelectors: []string{`[data-key="card-headline"]`},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(".CardHeadline")},
				{Name: scraper.FieldLink, Spec: scraper.Sel("a")},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".content")},
				{Name: scraper.FieldDate, Spec: scraper.Sel(".Timestamp")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(".Tag")},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(".byline")},
				{Name: scraper.FieldImage, Spec: scraper.Sel("img")},
			},
			RemoveDuplicates: true,
		},
		{
			Key:                "awsblog",
			Name:               "AWS Blog",
			URL:                "https://aws.amazon.com/blogs/aws",
			ContainerSelectors: []string{".lb-row.lb-snap", ".blog-post-container"},
			Fields: []scraper.FieldSelector{
				{Name: scraper.FieldTitle, Spec: scraper.Sel(`h2.lb-bold.blog-post-title span[property="name headline"]`, "h2.blog-post-title a")},
				{Name: scraper.FieldLink, Spec: scraper.Sel(`h2.lb-bold.blog-post-title a[property="url"]`, `a[property="url"][rel="bookmark"]`)},
				{Name: scraper.FieldSummary, Spec: scraper.Sel(".blog-post-excerpt p", `section[property="description"] p`)},
				{Name: scraper.FieldDate, Spec: scraper.Sel(`time[property="datePublished"]`, ".blog-post-meta time")},
				{Name: scraper.FieldCategory, Spec: scraper.Sel(`.blog-post-categories a span[property="articleSection"]`)},
				{Name: scraper.FieldAuthor, Spec: scraper.Sel(`span[property="author"] span[property="name"]`)},
				{Name: scraper.FieldImage, Spec: scraper.Sel(".lb-col.lb-mid-6.lb-tiny-24 img", "img")},
			},
			DateParser:       scraper.DateParserFunc(parseAWSDate),
			PostProcessor:    scraper.PostProcessorFunc(processAWSArticle),
			RemoveDuplicates: true,
		},
	}
}

// parseBBCDate resolves BBC's relative timestamps ("2 hrs ago",
// "34 mins ago", "yesterday") against the wall clock. Anything else is
// returned unchanged.
func parseBBCDate(raw string) string {
	if resolved, ok := dateparse.ParseRelative(raw, time.Now()); ok {
		return resolved
	}
	return raw
}

var awsDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2 Jan 2006",
	"January 2, 2006",
}

// parseAWSDate canonicalizes the AWS blog's published timestamps, which
// come as ISO 8601 with a zone offset ("2025-05-07T06:34:48-07:00").
func parseAWSDate(raw string) string {
	for _, layout := range awsDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	return raw
}

// processBBCArticle attaches BBC card metadata the declared selectors
// cannot express: live coverage badges, media indicators, metadata tags
// and image captions.
func processBBCArticle(article *scraper.Article, container scraper.Element) error {
	if live, ok := container.Select(`.live-tag, [data-testid="live-tag"]`); ok {
		article.SetExtra("is_live", "true")
		if text := strings.TrimSpace(live.Text()); text != "" {
			article.SetExtra("live_text", text)
		}
	}
	if _, ok := container.Select(`.video-icon, [data-testid="video-icon"]`); ok {
		article.SetExtra("has_video", "true")
	}
	if _, ok := container.Select(`.audio-icon, [data-testid="audio-icon"]`); ok {
		article.SetExtra("has_audio", "true")
	}

	if meta, ok := container.Select(`[data-testid="card-metadata"]`); ok {
		var tags []string
		for _, span := range meta.SelectAll("span") {
			if text := strings.TrimSpace(span.Text()); text != "" {
				tags = append(tags, text)
			}
		}
		if len(tags) > 0 {
			article.SetExtra("metadata_tags", strings.Join(tags, ", "))
		}
	}

	if caption, ok := container.Select("figcaption, .image-caption"); ok {
		if text := strings.TrimSpace(caption.Text()); text != "" {
			article.SetExtra("image_caption", text)
		}
	}

	return nil
}

// processCNNArticle flags cards that carry a video indicator.
func processCNNArticle(article *scraper.Article, container scraper.Element) error {
	if _, ok := container.Select(".video-icon"); ok {
		article.SetExtra("has_video", "true")
	}
	return nil
}

var awsRegionPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Za-z]+)*)\s+Region`)

// awsServices are service names scanned for in titles and summaries.
var awsServices = []string{
	"EC2", "S3", "LAMBDA", "RDS", "CLOUDFORMATION", "ECS", "EKS", "SQS", "SNS",
	"DYNAMODB", "CLOUDFRONT", "ROUTE 53", "VPC", "IAM", "CLOUDWATCH", "KINESIS",
	"REDSHIFT", "EMR", "GLUE", "SAGEMAKER", "CODEDEPLOY", "CODEPIPELINE", "CODEBUILD",
}

// processAWSArticle enriches AWS blog posts with the full category list,
// mentioned service names and announcement flags.
func processAWSArticle(article *scraper.Article, container scraper.Element) error {
	var categories []string
	for _, cat := range container.SelectAll(`.blog-post-categories a span[property="articleSection"]`) {
		if text := strings.TrimSpace(cat.Text()); text != "" {
			categories = append(categories, text)
		}
	}
	if len(categories) > 0 {
		article.SetExtra("categories", strings.Join(categories, "; "))
		article.Category = categories[0]
	}

	haystack := strings.ToUpper(article.Title + " " + article.Summary)

	var mentioned []string
	for _, service := range awsServices {
		if strings.Contains(haystack, service) {
			mentioned = append(mentioned, service)
		}
	}
	if len(mentioned) > 0 {
		article.SetExtra("aws_services", strings.Join(mentioned, ", "))
	}

	if strings.Contains(haystack, "REGION") || strings.Contains(haystack, "AVAILABILITY ZONE") {
		article.SetExtra("is_region_announcement", "true")
		if matches := awsRegionPattern.FindAllStringSubmatch(article.Title+" "+article.Summary, -1); len(matches) > 0 {
			seen := make(map[string]bool)
			var regions []string
			for _, m := range matches {
				if !seen[m[1]] {
					seen[m[1]] = true
					regions = append(regions, m[1])
				}
			}
			article.SetExtra("aws_regions", strings.Join(regions, ", "))
		}
	}

	for _, keyword := range []string{"LAUNCH", "ANNOUNC", "INTRODUC", "NEW"} {
		if strings.Contains(haystack, keyword) {
			article.SetExtra("is_feature_announcement", "true")
			break
		}
	}

	if img, ok := container.Select("img"); ok {
		if alt, ok := img.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			article.SetExtra("image_alt", strings.TrimSpace(alt))
		}
	}

	return nil
}
