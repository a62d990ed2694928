package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// deleteBatchSize is the S3 limit for keys per DeleteObjects request.
const deleteBatchSize = 1000

const defaultRegion = "us-east-1"

type awsClient struct {
	client   *s3.Client
	uploader *manager.Uploader
}

func newAWSClient(ctx context.Context, cfg Config) (*awsClient, error) {
	timeoutDuration := timeout(cfg)
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		base := newTransport(timeoutDuration)
		tr.Proxy = base.Proxy
		tr.DialContext = base.DialContext
		tr.TLSHandshakeTimeout = base.TLSHandshakeTimeout
		tr.ResponseHeaderTimeout = base.ResponseHeaderTimeout
	})

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithHTTPClient(httpClient),
	}
	if cfg.Endpoint != "" {
		// S3-compatible stores often reject the default trailing checksums.
		loadOpts = append(loadOpts,
			config.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
			config.WithResponseChecksumValidation(aws.ResponseChecksumValidationWhenRequired),
		)
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg))
		}
	})

	return &awsClient{
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// endpointURL adds the scheme the SDK requires.
func endpointURL(cfg Config) string {
	if strings.Contains(cfg.Endpoint, "://") {
		return cfg.Endpoint
	}
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

func (c *awsClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, awsError(bucket, key, err)
	}
	return out.Body, nil
}

func (c *awsClient) ListObjects(ctx context.Context, bucket string, opts ListOptions) <-chan ObjectInfo {
	out := make(chan ObjectInfo)
	go func() {
		defer close(out)

		input := &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
			Prefix: aws.String(opts.Prefix),
		}
		if !opts.Recursive {
			input.Delimiter = aws.String("/")
		}

		paginator := s3.NewListObjectsV2Paginator(c.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				send(ctx, out, ObjectInfo{Err: awsError(bucket, opts.Prefix, err)})
				return
			}
			for _, cp := range page.CommonPrefixes {
				if !send(ctx, out, ObjectInfo{Key: aws.ToString(cp.Prefix)}) {
					return
				}
			}
			for _, obj := range page.Contents {
				info := ObjectInfo{
					Key:          aws.ToString(obj.Key),
					Size:         aws.ToInt64(obj.Size),
					LastModified: aws.ToTime(obj.LastModified),
				}
				if !send(ctx, out, info) {
					return
				}
			}
		}
	}()
	return out
}

func (c *awsClient) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	var errs []error
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := c.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return errors.Join(append(errs, fmt.Errorf("delete objects in s3://%s: %w", bucket, err))...)
		}
		for _, e := range out.Errors {
			errs = append(errs, fmt.Errorf("remove s3://%s/%s: %s: %s",
				bucket, aws.ToString(e.Key), aws.ToString(e.Code), aws.ToString(e.Message)))
		}
	}
	return errors.Join(errs...)
}

// Upload hands the body to the SDK upload manager, which sends a single
// PutObject for bodies below its part size.
func (c *awsClient) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *awsClient) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySource(srcBucket, srcKey)),
	})
	if err != nil {
		return awsError(srcBucket, srcKey, err)
	}
	return nil
}

func (c *awsClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return true, nil
	}
	if errors.Is(awsError(bucket, "", err), ErrNotFound) {
		return false, nil
	}
	return false, err
}

// copySource escapes each key segment but keeps the separators.
func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

func awsError(bucket, key string, err error) error {
	var noSuchKey *types.NoSuchKey
	var missing *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &missing) {
		return notFound(bucket, key, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return notFound(bucket, key, err)
		}
	}
	return fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
}
