// Package storage provides the S3-compatible object store client used by
// the gateway. It exposes single-object operations against one bucket and
// translates backend error codes into the gateway's sentinel errors.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"notegate"
)

// DefaultCallTimeout bounds each store call when the config does not set one.
const DefaultCallTimeout = 15 * time.Second

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// CallTimeout bounds every individual store call. Zero means
	// DefaultCallTimeout.
	CallTimeout time.Duration
}

// s3API is the subset of the S3 client the gateway uses. Kept as an
// interface so tests can inject fakes.
type s3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type listObjectsV2Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Client implements notegate.ObjectStore against an S3-compatible store.
type Client struct {
	api                       s3API
	bucket                    string
	callTimeout               time.Duration
	newListObjectsV2Paginator func(client s3.ListObjectsV2APIClient, input *s3.ListObjectsV2Input) listObjectsV2Paginator
}

// NewClient creates a Client for the configured bucket and endpoint.
// Path-style addressing is used so MinIO, Storj and similar S3-compatible
// endpoints resolve without per-bucket DNS.
func NewClient(cfg Config) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	return &Client{
		api:         api,
		bucket:      cfg.Bucket,
		callTimeout: timeout,
		newListObjectsV2Paginator: func(client s3.ListObjectsV2APIClient, input *s3.ListObjectsV2Input) listObjectsV2Paginator {
			return s3.NewListObjectsV2Paginator(client, input)
		},
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Bucket == "" {
		return errors.New("s3 bucket is required")
	}
	if cfg.Region == "" {
		return errors.New("s3 region is required")
	}
	if cfg.Endpoint == "" {
		return errors.New("s3 endpoint is required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("s3 endpoint must be a valid http(s) URL: %q", cfg.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("s3 endpoint must use http or https: %q", cfg.Endpoint)
	}
	return nil
}

// List returns every key in the bucket, walking all pages.
func (c *Client) List(ctx context.Context) ([]string, error) {
	if c.api == nil {
		return nil, errors.New("s3 api client is not configured")
	}
	if c.newListObjectsV2Paginator == nil {
		return nil, errors.New("s3 paginator factory is not configured")
	}

	paginator := c.newListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	})
	if paginator == nil {
		return nil, errors.New("s3 paginator is not configured")
	}

	keys := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := c.nextPage(ctx, paginator)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

func (c *Client) nextPage(ctx context.Context, paginator listObjectsV2Paginator) (*s3.ListObjectsV2Output, error) {
	pageCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	return paginator.NextPage(pageCtx)
}

// Get downloads the object at key, returning notegate.ErrNotFound when
// the key is absent.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c.api == nil {
		return nil, errors.New("s3 api client is not configured")
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	out, err := c.api.GetObject(callCtx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, notegate.ErrNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// Put uploads the object at key, overwriting unconditionally.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return c.put(ctx, key, data, contentType, false)
}

// PutIfAbsent uploads the object only when the key does not exist,
// returning notegate.ErrConflict when it does. The existence condition is
// enforced by the store (If-None-Match: *), not by a separate probe.
func (c *Client) PutIfAbsent(ctx context.Context, key string, data []byte, contentType string) error {
	return c.put(ctx, key, data, contentType, true)
}

func (c *Client) put(ctx context.Context, key string, data []byte, contentType string, ifAbsent bool) error {
	if c.api == nil {
		return errors.New("s3 api client is not configured")
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if ifAbsent {
		input.IfNoneMatch = aws.String("*")
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.PutObject(callCtx, input); err != nil {
		if ifAbsent && isPreconditionFailed(err) {
			return notegate.ErrConflict
		}
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// Head reports whether the key exists, with size and last-modified when
// found. Absence is an explicit result, not an error.
func (c *Client) Head(ctx context.Context, key string) (notegate.ObjectInfo, bool, error) {
	if c.api == nil {
		return notegate.ObjectInfo{}, false, errors.New("s3 api client is not configured")
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	out, err := c.api.HeadObject(callCtx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return notegate.ObjectInfo{}, false, nil
		}
		return notegate.ObjectInfo{}, false, fmt.Errorf("head object: %w", err)
	}

	info := notegate.ObjectInfo{Key: key}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return info, true, nil
}

// Delete removes the object at key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.api == nil {
		return errors.New("s3 api client is not configured")
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.DeleteObject(callCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.callTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// isNotFound checks for key-absent conditions. Typed SDK errors are
// checked first, then API error codes for S3-compatible services that do
// not return the exact SDK types.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || code == "404"
	}

	return false
}

func isPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "PreconditionFailed" || code == "ConditionalRequestConflict"
	}

	return false
}
