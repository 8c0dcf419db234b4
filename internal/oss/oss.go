package oss

import (
	"fmt"
	"net/url"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Service 将商品图片的对象键解析为可访问的URL
type Service interface {
	// ResolveURL 已是完整URL的直接返回; 否则按 CDN > 签名URL > 公共读URL 的顺序生成
	ResolveURL(objectKey string) (string, error)
	Close() error
}

type aliyunOssService struct {
	client *oss.Client
	bucket *oss.Bucket
	config config.Oss
}

// NewClient 创建OSS客户端, 不发起网络请求
func NewClient(cfg config.Oss) (Service, error) {
	// 公共读URL按域名拼接, SDK 统一走 https
	cfg.Endpoint = strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := oss.New("https://"+cfg.Endpoint, cfg.AccessKeyId, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("创建阿里云OSS客户端失败[f0zq3m]: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("获取OSS Bucket失败[xk81pd]: %w", err)
	}

	return &aliyunOssService{
		client: client,
		bucket: bucket,
		config: cfg,
	}, nil
}

func (s *aliyunOssService) ResolveURL(objectKey string) (string, error) {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return "", nil
	}
	if strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") || strings.HasPrefix(objectKey, "//") {
		return objectKey, nil
	}

	key := s.objectKey(objectKey)

	if s.config.CdnDomain != "" {
		cdnURL, err := url.Parse(s.config.CdnDomain)
		if err == nil && cdnURL.Host != "" {
			cdnURL.Path = strings.TrimSuffix(cdnURL.Path, "/") + "/" + key
			return cdnURL.String(), nil
		}
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.CdnDomain, "/"), key), nil
	}

	if s.config.SignExpiry > 0 {
		signed, err := s.bucket.SignURL(key, oss.HTTPGet, s.config.SignExpiry)
		if err != nil {
			return "", fmt.Errorf("生成OSS签名URL失败[n5vw2c]: %w", err)
		}
		return signed, nil
	}

	return fmt.Sprintf("https://%s.%s/%s", s.config.Bucket, s.config.Endpoint, key), nil
}

// objectKey 为相对路径补上存储前缀
func (s *aliyunOssService) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	prefix := strings.Trim(s.config.StoragePath, "/")
	if prefix == "" || strings.HasPrefix(key, prefix+"/") {
		return key
	}
	return prefix + "/" + key
}

func (s *aliyunOssService) Close() error {
	// SDK 客户端无需显式关闭
	return nil
}
