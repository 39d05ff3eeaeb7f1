package pipeline

import (
	"context"
	"fmt"

	"github.com/easybiz/easybiz-api/internal/generation"
)

const defaultLogoStyle = "modern"

const (
	brandIdentityPrompt = "Create a complete brand identity including brand name, tagline, mission statement, " +
		"brand values, tone of voice, color palette, and typography suggestions."
	logoDescriptionPrompt = "Create a detailed logo description for %s in the %s industry. " +
		"Focus on symbolism and professional design."
	brandSocialPrompt = "Create 5 social media post ideas with captions and hashtags for brand promotion."
)

// BrandKitResult is the result of the brand_kit pipeline. Logo is nil when
// no image backend is configured, an ErrorMarker when the logo step failed,
// and a generation.Image otherwise.
type BrandKitResult struct {
	BrandIdentity generation.Content `json:"brand_identity"`
	Logo          any                `json:"logo"`
	SocialMedia   generation.Content `json:"social_media"`
	GeneratedAt   string             `json:"generated_at"`
}

// BrandKit generates a brand identity, a logo and social post ideas.
type BrandKit struct {
	base
}

func (p *BrandKit) Type() generation.GenerationType { return generation.TypeBrandKit }

func (p *BrandKit) Run(ctx context.Context, req generation.Request) (any, error) {
	pc := req.Prompts

	identity, err := p.gen.GenerateText(ctx, brandIdentityPrompt, pc)
	if err != nil {
		return nil, err
	}

	var logo any
	if p.gen.CanGenerateImages() {
		logo = p.logo(ctx, pc)
	}

	social, err := p.gen.GenerateText(ctx, brandSocialPrompt, pc.Merge(identity))
	if err != nil {
		return nil, err
	}

	return BrandKitResult{
		BrandIdentity: identity,
		Logo:          logo,
		SocialMedia:   social,
		GeneratedAt:   p.timestamp(),
	}, nil
}

// logo describes then renders the logo. Failures are returned as an ErrorMarker.
func (p *BrandKit) logo(ctx context.Context, pc generation.PromptContext) any {
	prompt := fmt.Sprintf(logoDescriptionPrompt, pc.BusinessName, pc.Industry)
	description, err := p.gen.GenerateText(ctx, prompt, pc)
	if err != nil {
		p.logger.WarnContext(ctx, "logo description failed", "error", err)
		return newErrorMarker(err)
	}

	style := pc.LogoStyle
	if style == "" {
		style = defaultLogoStyle
	}

	img, err := p.gen.GenerateImage(ctx, description.Text(), style)
	if err != nil {
		p.logger.WarnContext(ctx, "logo image failed", "error", err)
		return newErrorMarker(err)
	}
	return img
}
