package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/dispatch"
	"github.com/scenebrush/scenebrush/imageutil"
	"github.com/scenebrush/scenebrush/prompt"
)

func (a *App) newEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an existing image",
		Long: `Edit an existing image with an instruction, optionally limited to a
masked region and optionally guided by a style reference.

With --finalize the instruction is replaced by the composite-finalizing
template, which blends previously pasted regions into a seamless result.`,
		RunE: a.runEdit,
	}

	cmd.Flags().StringVarP(&a.editSource, "input", "i", "", "image to edit")
	cmd.Flags().StringVarP(&a.editMask, "mask", "m", "", "mask limiting the edited region")
	cmd.Flags().StringVarP(&a.editReference, "reference", "r", "", "style reference image")
	cmd.Flags().StringVarP(&a.editPrompt, "prompt", "p", "", "edit instruction")
	cmd.Flags().BoolVar(&a.editFinalize, "finalize", false, "blend composited regions instead of applying an instruction")
	cmd.Flags().IntVar(&a.editWidth, "width", 0, "output width in pixels (0 = auto from input)")
	cmd.Flags().IntVar(&a.editHeight, "height", 0, "output height in pixels (0 = auto from input)")
	cmd.Flags().StringVarP(&a.editOutput, "output", "o", "out.png", "output file")

	return cmd
}

func (a *App) runEdit(cmd *cobra.Command, args []string) error {
	source, err := loadImage(a.editSource)
	if err != nil {
		return err
	}
	if source == nil {
		return fmt.Errorf("edit requires --input")
	}
	mask, err := loadImage(a.editMask)
	if err != nil {
		return err
	}
	reference, err := loadImage(a.editReference)
	if err != nil {
		return err
	}

	text := a.editPrompt
	if a.editFinalize {
		text = prompt.FinalizeSentinel
	}
	if text == "" {
		return fmt.Errorf("edit requires --prompt or --finalize")
	}

	width, height := a.editWidth, a.editHeight
	if width == 0 || height == 0 {
		// Edits keep the source's own dimensions unless told otherwise.
		if w, h := imageutil.Dimensions(source.Data); w > 0 && h > 0 {
			width, height = w, h
		} else {
			width, height = a.resolveSize(width, height, source)
		}
	}

	req := &dispatch.Request{
		Provider:  a.provider,
		Structure: source,
		Mask:      mask,
		Reference: reference,
		UserText:  text,
		Width:     width,
		Height:    height,
	}

	res, err := a.runJob(cmd.Context(), func(ctx context.Context, d *dispatch.Dispatcher) (*core.ImageResult, error) {
		return d.Edit(ctx, req)
	})
	if err != nil {
		return err
	}
	return a.writeResult(res, a.editOutput, "Edit complete!")
}
