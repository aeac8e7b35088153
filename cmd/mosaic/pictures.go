package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/platform/tui"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

var flagPreviewWidth int

var picturesCmd = &cobra.Command{
	Use:   "pictures [name|path]",
	Short: "List the built-in pictures or preview one",
	Long: `Without arguments, lists the built-in pictures.
With a picture name or an image file, prints a colored preview.

Examples:
  mosaic pictures
  mosaic pictures aurora
  mosaic pictures ./photo.png --width 60`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPictures,
}

func init() {
	picturesCmd.Flags().IntVar(&flagPreviewWidth, "width", 40, "Preview width in columns")
}

func runPictures(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		listPictures()
		return nil
	}

	img, err := slicer.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Println(renderPreview(img, max(flagPreviewWidth, 2)))
	return nil
}

func listPictures() {
	fmt.Println("Built-in pictures:")
	fmt.Println()
	for _, name := range slicer.Names() {
		p, _ := slicer.Lookup(name)
		marker := " "
		if name == slicer.DefaultPicture {
			marker = "*"
		}
		fmt.Printf(" %s %-8s  %s\n", marker, name, p.Description)
	}
	fmt.Println()
	fmt.Println("* default. Any png, jpeg, gif, bmp or webp file works too:")
	fmt.Println("  mosaic play --image ./photo.png")
}

// renderPreview draws the picture with half-block characters, two pixel
// rows per terminal row, keeping the picture's aspect ratio.
func renderPreview(img image.Image, width int) string {
	b := img.Bounds()
	rows := max(width*b.Dy()/b.Dx()/2, 1)
	pixels := slicer.Sample(img, width, rows*2)

	screen := core.NewScreen(width, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			top, bottom := pixels[2*y][x], pixels[2*y+1][x]
			screen.SetCell(x, y, core.Cell{
				Rune: '▀',
				FG:   core.FromRGB(top.R, top.G, top.B),
				BG:   core.FromRGB(bottom.R, bottom.G, bottom.B),
			})
		}
	}
	return tui.RenderScreen(screen)
}
