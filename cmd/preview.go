package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/platform/raster"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.ui>",
	Short: "Draw the resolved layout as a PNG",
	Long: `Resolve a layout and draw it: textures from the assets directory where they
exist, kind-colored boxes where they do not, labels with their text and
buttons tinted by state. Writes base64 PNG to stdout unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	previewCmd.Flags().Float64("scale", 0.5, "Output pixels per layout unit (0.1-4)")
	previewCmd.Flags().Bool("outlines", true, "Draw each control's box and name")
	previewCmd.Flags().Bool("strict", false, "Fail when a texture or font file is missing")
	previewCmd.Flags().Float64("x", 0, "Pointer X; buttons under it are drawn in hover")
	previewCmd.Flags().Float64("y", 0, "Pointer Y")
	previewCmd.Flags().StringSlice("disable", nil, "Buttons to draw as disabled")
}

func runPreview(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")
	outlines, _ := cmd.Flags().GetBool("outlines")
	strict, _ := cmd.Flags().GetBool("strict")
	if scale < 0.1 || scale > 4 {
		return fmt.Errorf("--scale must be between 0.1 and 4, got %g", scale)
	}

	assets := raster.NewRegistry(cfg.AssetsDir, strict)
	scene, err := loadScene(args[0], assets)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, nil)
	if err != nil {
		return err
	}
	if err := disableFromFlag(cmd, sys); err != nil {
		return err
	}

	var in platform.InputFrame
	hasPointer := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
	if hasPointer {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		in.Pointer.X, in.Pointer.Y = float32(x), float32(y)
		sys.Tick(in)
	}

	r := raster.NewRenderer(assets, raster.Options{Scale: scale, Outlines: outlines, Pointer: hasPointer})
	if err := r.Render(scene.Frame(sys, in.Pointer)); err != nil {
		return err
	}

	if outPath != "" {
		return r.SavePNG(outPath)
	}

	// Default: write to stdout as base64 for easy agent consumption
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return err
	}
	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
