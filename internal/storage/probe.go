// Package storage はS3互換オブジェクトストレージへの疎通確認を提供する。
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// テストで差し替えるためのSDK呼び出し。
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	headBucket = func(c *s3.Client, ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
		return c.HeadBucket(ctx, in, optFns...)
	}
)

// Config はバケット接続設定。
// Endpointを指定した場合はMinIO等を想定してパス形式でアクセスする。
// AccessKeyが空の場合はSDKのデフォルト認証チェーンを使う。
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// BucketProbe はHeadBucketでバケットへの到達性と権限を確認する。
type BucketProbe struct {
	client *s3.Client
	bucket string
}

// NewBucketProbe はBucketProbeを生成する。ネットワークアクセスはCheckまで行わない。
func NewBucketProbe(ctx context.Context, cfg Config) (*BucketProbe, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &BucketProbe{client: client, bucket: cfg.Bucket}, nil
}

// Name はレディネスチェックの結果に表示する依存名を返す。
func (p *BucketProbe) Name() string {
	return "storage"
}

// Check はバケットにHeadBucketを送り、到達できなければエラーを返す。
func (p *BucketProbe) Check(ctx context.Context) error {
	if _, err := headBucket(p.client, ctx, &s3.HeadBucketInput{Bucket: aws.String(p.bucket)}); err != nil {
		return fmt.Errorf("failed to head bucket %s: %w", p.bucket, err)
	}
	return nil
}
