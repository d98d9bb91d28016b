package s3

import (
	"github.com/aws/aws-sdk-go-v2/config"
)

// Option configures New.
type Option func(*options)

type options struct {
	prefix  string
	region  string
	client  Client
	upload  UploadConfig
	loaders []func(*config.LoadOptions) error
}

// WithPrefix places every blob below prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion sets the AWS region used when New builds the client.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithClient uses c instead of a client built from the default AWS config.
func WithClient(c Client) Option {
	return func(o *options) { o.client = c }
}

// WithUploadConfig overrides DefaultUploadConfig.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *options) { o.upload = cfg }
}

// WithConfigLoader adds an option to config.LoadDefaultConfig, for example
// config.WithSharedConfigProfile.
func WithConfigLoader(fn func(*config.LoadOptions) error) Option {
	return func(o *options) { o.loaders = append(o.loaders, fn) }
}
