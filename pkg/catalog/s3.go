package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/coursebook/internal/errors"
)

// ObjectGetter is the subset of the S3 client used to fetch catalogs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures the S3 client built by NewS3Client.
type S3Options struct {
	Region string

	// Endpoint overrides the AWS endpoint (MinIO, LocalStack).
	Endpoint string

	// PathStyle forces path-style addressing, required by most S3 clones.
	PathStyle bool

	// AccessKeyID and SecretAccessKey are static credentials.
	// Anonymous access is used when both are empty.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client creates an S3 client from explicit options.
func NewS3Client(opts S3Options) *s3.Client {
	var creds aws.CredentialsProvider = aws.AnonymousCredentials{}
	if opts.AccessKeyID != "" || opts.SecretAccessKey != "" {
		static := aws.Credentials{
			AccessKeyID:     opts.AccessKeyID,
			SecretAccessKey: opts.SecretAccessKey,
			Source:          "coursebook",
		}
		creds = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return static, nil
			}))
	}

	s3opts := s3.Options{
		Region:       opts.Region,
		Credentials:  creds,
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(s3opts)
}

// LoadS3 loads a catalog stored as a JSON object in S3.
func LoadS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Store, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E203").WithDetail("s3://" + bucket + "/" + key).Wrap(err)
	}
	defer out.Body.Close()

	courses, err := Decode(out.Body)
	if err != nil {
		return nil, err
	}
	return NewStore(courses), nil
}
