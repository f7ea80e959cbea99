package services

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/config"
	"github.com/sitesmith/sitesmith-backend/errs"
)

// Publisher uploads a project's generated files to S3 static hosting.
type Publisher struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewPublisher builds a Publisher from config. Returns nil when no
// PUBLISH_BUCKET is set; publishing is an optional feature.
func NewPublisher(ctx context.Context, cfg map[string]string) (*Publisher, error) {
	bucket := config.GetString(cfg, "PUBLISH_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	baseURL := config.GetString(cfg, "PUBLISH_BASE_URL", fmt.Sprintf("https://%s.s3.amazonaws.com", bucket))

	return &Publisher{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log.With().Str("service", "publisher").Logger(),
	}, nil
}

// PublishProject uploads every file of the project under
// sites/{projectID}/ and returns the public URL of the site's entry page.
func (p *Publisher) PublishProject(ctx context.Context, projectID uuid.UUID, files map[string]string) (string, error) {
	if len(files) == 0 {
		return "", errs.BadRequest("project has no files to publish")
	}

	for filename, content := range files {
		key := path.Join("sites", projectID.String(), filename)
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        strings.NewReader(content),
			ContentType: aws.String(contentTypeFor(filename)),
		})
		if err != nil {
			p.logger.Error().Err(err).Str("key", key).Msg("Failed to upload file")
			return "", errs.NewPublishFailedError(err)
		}
	}

	entry := entryFile(files)
	url := fmt.Sprintf("%s/sites/%s/%s", p.baseURL, projectID, entry)
	p.logger.Info().Str("projectID", projectID.String()).Int("files", len(files)).Str("url", url).Msg("Project published")
	return url, nil
}

// entryFile picks the page a published URL should open: index.html when
// present, otherwise the first HTML file found, otherwise any file.
func entryFile(files map[string]string) string {
	if _, ok := files["index.html"]; ok {
		return "index.html"
	}
	for name := range files {
		if strings.HasSuffix(strings.ToLower(name), ".html") {
			return name
		}
	}
	for name := range files {
		return name
	}
	return ""
}

func contentTypeFor(filename string) string {
	if byExt := mime.TypeByExtension(path.Ext(filename)); byExt != "" {
		return byExt
	}
	return "text/plain; charset=utf-8"
}
