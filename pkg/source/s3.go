package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// DefaultRegion is used when S3Config.Region is empty.
const DefaultRegion = "us-east-1"

// DefaultS3Concurrency bounds parallel object downloads.
const DefaultS3Concurrency = 8

// S3Config holds S3-compatible bucket configuration.
type S3Config struct {
	// Bucket is the bucket name (required).
	Bucket string `env:"LINGO_S3_BUCKET"`

	// Prefix is the key prefix translation files live under, e.g. "locales".
	Prefix string `env:"LINGO_S3_PREFIX"`

	AccessKey string `env:"LINGO_S3_ACCESS_KEY"`
	SecretKey string `env:"LINGO_S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL for MinIO or other S3-compatible services.
	Endpoint string `env:"LINGO_S3_ENDPOINT"`

	Region string `env:"LINGO_S3_REGION" envDefault:"us-east-1"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"LINGO_S3_PATH_STYLE"`

	// Concurrency bounds parallel downloads (default: 8).
	Concurrency int `env:"LINGO_S3_CONCURRENCY"`
}

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultS3Concurrency
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

func (c *S3Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: access key and secret key are required", ErrInvalidConfig)
	}
	return nil
}

// S3Client is the subset of the S3 API the source uses.
type S3Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 loads trees from objects laid out as {prefix}/{lang}/{namespace}.{ext}.
type S3 struct {
	client   S3Client
	cfg      S3Config
	decoders map[string]Decoder
}

// NewS3 creates a source reading the configured bucket.
func NewS3(cfg S3Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewS3WithClient(s3.New(s3.Options{}, opts...), cfg), nil
}

// NewS3WithClient creates a source over an existing client. Credentials in
// cfg are ignored.
func NewS3WithClient(client S3Client, cfg S3Config) *S3 {
	cfg.applyDefaults()
	return &S3{
		client: client,
		cfg:    cfg,
		decoders: map[string]Decoder{
			".json": DecodeJSON,
			".yaml": DecodeYAML,
			".yml":  DecodeYAML,
		},
	}
}

// Load lists the prefix and downloads every translation object.
func (s *S3) Load(ctx context.Context) (map[string]locale.Tree, error) {
	keys, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	// Objects download in parallel; results are merged in listing order so
	// duplicate namespaces resolve the same way FS does.
	docs := make([]document, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, key := range keys {
		g.Go(func() error {
			doc, err := s.fetch(gctx, key)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]locale.Tree)
	for _, doc := range docs {
		addNamespace(out, doc.lang, doc.namespace, doc.content)
	}
	return out, nil
}

// Put writes one namespace of a language as a JSON object.
func (s *S3) Put(ctx context.Context, lang, namespace string, content map[string]any) error {
	data, err := EncodeJSON(content)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(s.objectKey(lang, namespace+".json")),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return wrapS3Error(err, ErrLoadFailed)
	}
	return nil
}

func (s *S3) list(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.cfg.Bucket)}
	if s.cfg.Prefix != "" {
		input.Prefix = aws.String(s.cfg.Prefix + "/")
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, ErrLoadFailed)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if _, ok := s.decoders[strings.ToLower(path.Ext(key))]; ok {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

type document struct {
	lang      string
	namespace string
	content   map[string]any
}

func (s *S3) fetch(ctx context.Context, key string) (document, error) {
	rel := key
	if s.cfg.Prefix != "" {
		rel = strings.TrimPrefix(key, s.cfg.Prefix+"/")
	}
	lang, ns, err := splitPath(rel)
	if err != nil {
		return document{}, err
	}

	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return document{}, wrapS3Error(err, ErrLoadFailed)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return document{}, fmt.Errorf("%w: reading %q: %w", ErrLoadFailed, key, err)
	}

	content, err := s.decoders[strings.ToLower(path.Ext(key))](data)
	if err != nil {
		return document{}, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, key, err)
	}
	return document{lang: lang, namespace: ns, content: content}, nil
}

func (s *S3) objectKey(lang, file string) string {
	if s.cfg.Prefix == "" {
		return path.Join(lang, file)
	}
	return path.Join(s.cfg.Prefix, lang, file)
}
