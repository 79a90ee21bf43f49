package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/dispatch"
	"github.com/scenebrush/scenebrush/imageutil"
)

func (a *App) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an image from a structure render",
		Long: `Generate an image from a rendered structure image (depth/mist map or
colour render), optionally guided by a style reference image.`,
		RunE: a.runGenerate,
	}

	cmd.Flags().StringVarP(&a.genStructure, "input", "i", "", "structure image (depth map or colour render)")
	cmd.Flags().StringVarP(&a.genReference, "reference", "r", "", "style reference image")
	cmd.Flags().StringVarP(&a.genPrompt, "prompt", "p", "", "instruction text")
	cmd.Flags().BoolVar(&a.genColorMode, "color", false, "treat the input as a colour render instead of a depth map")
	cmd.Flags().IntVar(&a.genWidth, "width", 0, "output width in pixels (0 = auto from input)")
	cmd.Flags().IntVar(&a.genHeight, "height", 0, "output height in pixels (0 = auto from input)")
	cmd.Flags().StringVarP(&a.genOutput, "output", "o", "out.png", "output file")

	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, args []string) error {
	structure, err := loadImage(a.genStructure)
	if err != nil {
		return err
	}
	if structure == nil {
		return fmt.Errorf("generate requires --input")
	}
	reference, err := loadImage(a.genReference)
	if err != nil {
		return err
	}

	width, height := a.resolveSize(a.genWidth, a.genHeight, structure)

	req := &dispatch.Request{
		Provider:  a.provider,
		Structure: structure,
		Reference: reference,
		UserText:  a.genPrompt,
		Width:     width,
		Height:    height,
		ColorMode: a.genColorMode,
	}

	res, err := a.runJob(cmd.Context(), func(ctx context.Context, d *dispatch.Dispatcher) (*core.ImageResult, error) {
		return d.Generate(ctx, req)
	})
	if err != nil {
		return err
	}
	return a.writeResult(res, a.genOutput, "Generation complete!")
}

// resolveSize fills unset dimensions: explicit flags win, then CLI config
// defaults, then automatic detection from the input image's tier.
func (a *App) resolveSize(width, height int, structure *core.ImageInput) (int, int) {
	if width == 0 {
		width = a.cfg.DefaultWidth
	}
	if height == 0 {
		height = a.cfg.DefaultHeight
	}
	if width > 0 && height > 0 {
		return width, height
	}

	srcW, srcH := imageutil.Dimensions(structure.Data)
	tier := core.DetectTier(srcW, srcH)
	size := tier.PixelSize()
	if srcW <= 0 || srcH <= 0 {
		return size, size
	}

	// Scale the source's aspect into the tier, keeping the larger edge at
	// the tier size, then snap to the supported ratio set.
	var w, h int
	if srcW >= srcH {
		w, h = size, size*srcH/srcW
	} else {
		w, h = size*srcW/srcH, size
	}
	return imageutil.AdjustResolution(w, h, imageutil.ClosestRatio(w, h))
}

func (a *App) printStatus(status string) {
	fmt.Fprintln(a.stdout, status)
}

// loadImage reads an image file into an input blob. An empty path yields
// nil without error so optional images stay optional.
func loadImage(path string) (*core.ImageInput, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &core.ImageInput{Data: data, MIMEType: imageutil.DetectMIME(path, data)}, nil
}
