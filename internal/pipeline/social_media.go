package pipeline

import (
	"context"
	"fmt"

	"github.com/easybiz/easybiz-api/internal/generation"
)

// Platforms is the fixed, ordered list of social platforms.
var Platforms = []string{"Facebook", "Instagram", "Twitter", "LinkedIn"}

const (
	platformPostPrompt = "Create 3 engaging %s posts for %s. Include captions and relevant hashtags."
	bannerDescription  = "Professional social media banner for %s on %s. Business in %s industry."
)

// PlatformPost is the post text for one platform, or the error that replaced it.
type PlatformPost struct {
	Platform string             `json:"platform"`
	Content  generation.Content `json:"content,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// PlatformBanner is the banner for one platform. A failed banner batch ends
// with a single entry carrying Error.
type PlatformBanner struct {
	Platform string            `json:"platform"`
	Banner   *generation.Image `json:"banner,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// SocialMediaResult is the result of the social_media pipeline.
type SocialMediaResult struct {
	Posts       []PlatformPost   `json:"posts"`
	Banners     []PlatformBanner `json:"banners"`
	GeneratedAt string           `json:"generated_at"`
}

// SocialMedia generates posts and banners for every platform.
//
// A failed post is recorded for its platform and the next platform is tried.
// A failed banner stops the banner batch: banners made before it are kept and
// one error entry for the failing platform is appended.
type SocialMedia struct {
	base
}

func (p *SocialMedia) Type() generation.GenerationType { return generation.TypeSocialMedia }

func (p *SocialMedia) Run(ctx context.Context, req generation.Request) (any, error) {
	pc := req.Prompts

	posts := make([]PlatformPost, 0, len(Platforms))
	for _, platform := range Platforms {
		prompt := fmt.Sprintf(platformPostPrompt, platform, pc.BusinessName)
		content, err := p.gen.GenerateText(ctx, prompt, pc.With("platform", platform))
		if err != nil {
			p.logger.WarnContext(ctx, "platform post failed", "platform", platform, "error", err)
			posts = append(posts, PlatformPost{Platform: platform, Error: newErrorMarker(err).Error})
			continue
		}
		posts = append(posts, PlatformPost{Platform: platform, Content: content})
	}

	banners := make([]PlatformBanner, 0, len(Platforms))
	if p.gen.CanGenerateImages() {
		for _, platform := range Platforms {
			desc := fmt.Sprintf(bannerDescription, pc.BusinessName, platform, pc.Industry)
			img, err := p.gen.GenerateImage(ctx, desc, "")
			if err != nil {
				p.logger.WarnContext(ctx, "banner generation stopped", "platform", platform, "error", err)
				banners = append(banners, PlatformBanner{Platform: platform, Error: newErrorMarker(err).Error})
				break
			}
			banners = append(banners, PlatformBanner{Platform: platform, Banner: &img})
		}
	}

	return SocialMediaResult{
		Posts:       posts,
		Banners:     banners,
		GeneratedAt: p.timestamp(),
	}, nil
}
