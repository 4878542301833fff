package cli

import (
	"fmt"
	"strings"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/labels"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/renderer"
	"github.com/spf13/cobra"
)

const variantAll = "all"

type renderOptions struct {
	text      string
	variant   string
	assetDir  string
	fontPath  string
	imageDir  string
	publicDir string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render label PNGs and PDFs locally",
		Example: `  labelctl render --text JUAN
  labelctl render --text "ANA MARIA" --variant 400`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "text to stamp on the label (required)")
	cmd.Flags().StringVar(&opts.variant, "variant", variantAll, "label variant: 400, 500 or all")
	cmd.Flags().StringVar(&opts.assetDir, "asset-dir", "", "directory holding 400.png and 500.png (default from ASSET_DIR)")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "font file (default from FONT_PATH)")
	cmd.Flags().StringVar(&opts.imageDir, "image-dir", "", "PNG output directory (default from IMAGE_OUTPUT_DIR)")
	cmd.Flags().StringVar(&opts.publicDir, "public-dir", "", "PDF output directory (default from PUBLIC_DIR)")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOptions) error {
	text := strings.TrimSpace(opts.text)
	if text == "" {
		return fmt.Errorf("--text must not be empty")
	}

	variants, err := parseVariants(opts.variant)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rend, err := renderer.New(renderer.Options{
		AssetDir:     firstNonEmpty(opts.assetDir, cfg.Render.AssetDir),
		FontPath:     firstNonEmpty(opts.fontPath, cfg.Render.FontPath),
		ImageDir:     firstNonEmpty(opts.imageDir, cfg.Render.ImageDir),
		PublicDir:    firstNonEmpty(opts.publicDir, cfg.Render.PublicDir),
		PublicPrefix: cfg.Server.PublicPrefix,
		DPI:          cfg.Render.DPI,
		Logger:       c.Logger,
	})
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	gen := labels.NewGenerator(rend, c.Logger)

	failed := 0
	for _, v := range variants {
		res := gen.RenderVariant(cmd.Context(), text, v)
		if !res.Success {
			failed++
			c.printf("%s\tFAILED\t%s: %s\n", v.Type(), res.ErrorCode, res.Error)
			continue
		}
		c.printf("%s\tok\tpng=%s\tpdf=%s\tfont=%dpt\n", v.Type(), res.ImagePath, res.PDFPath, res.FontSize)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d labels failed", failed, len(variants))
	}
	return nil
}

func parseVariants(s string) ([]models.Variant, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == variantAll {
		return models.Variants, nil
	}
	for _, v := range models.Variants {
		if string(v) == strings.TrimSuffix(s, "ml") {
			return []models.Variant{v}, nil
		}
	}
	return nil, fmt.Errorf("unknown variant %q (want 400, 500 or all)", s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
