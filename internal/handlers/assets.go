package handlers

import (
	"context"
	"time"

	"wfxshop/internal/services"

	"go.uber.org/zap"
)

// ImageResolver maps a stored product image name to a URL the pages can render.
type ImageResolver interface {
	ImageURL(ctx context.Context, image string) string
}

// NewImageResolver returns a resolver backed by object storage when an
// assets service is configured, and the local static route otherwise.
func NewImageResolver(assets services.MinioService, bucket string) ImageResolver {
	if assets == nil {
		return staticResolver{}
	}
	return &presignedResolver{assets: assets, bucket: bucket}
}

type staticResolver struct{}

func (staticResolver) ImageURL(_ context.Context, image string) string {
	if image == "" {
		return ""
	}
	return "/static/" + image
}

// presignedResolver hands out short-lived object storage links so the
// bucket itself can stay private.
type presignedResolver struct {
	assets services.MinioService
	bucket string
}

func (r *presignedResolver) ImageURL(ctx context.Context, image string) string {
	if image == "" {
		return ""
	}
	url, err := r.assets.GetPresignedURL(ctx, r.bucket, image, time.Hour)
	if err != nil {
		zap.S().Warnw("presign product image failed, serving static fallback", "image", image, "error", err)
		return "/static/" + image
	}
	return url
}
