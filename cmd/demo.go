package cmd

import (
	"math"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/prefab/internal/codec"
	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write the procedural bomb example prefab",
	Long: "demo builds a bomb of eight circle bullets parented to a spinning empty " +
		"base and writes it with cumulative rotation.",
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringP("output", "o", "", "output file (default <out_dir>/procedural_bomb.lsp)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = filepath.Join(e.cfg.OutDir, "procedural_bomb"+codec.Ext)
	}

	doc := proceduralBomb(e.documentOptions()...)
	flags := e.cfg.CodecFlags()
	flags.CumulativeRotation = true
	c := codec.New(flags, codec.WithIndent(e.cfg.Encode.Indent), codec.WithLogger(e.log))

	printer := ui.New()
	if err := c.WriteFile(out, doc); err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.BuildDone(doc.Name, out, doc.Len())
	return nil
}

// Bullet layout of the procedural bomb.
const (
	demoBullets  = 8
	demoDistance = 60
	demoFlight   = 10 // seconds
)

// proceduralBomb builds an empty base that rotates to 90° and back to
// 10°, with bullets fanned evenly around it flying outward.
func proceduralBomb(opts ...prefab.Option) *prefab.Document {
	doc := prefab.NewDocument("Procedural Bomb", prefab.CategoryBombs, opts...)

	base := doc.CreateObject("Bomb Base")
	base.Kind = prefab.KindEmpty
	base.Rotation.Insert(prefab.Keyframe[float32]{Time: 2.5, Value: 90})
	base.Rotation.Insert(prefab.Keyframe[float32]{Time: 4, Value: 10})

	for i := 0; i < demoBullets; i++ {
		angle := float64(i) / 4 * math.Pi
		dir := prefab.Vec2{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}

		bullet := doc.CreateObject("Bullet")
		bullet.Shape = prefab.ShapeCircle
		bullet.Editor.Bin = 1
		// base belongs to doc, so this cannot fail.
		_ = doc.SetParent(bullet.ID(), base)
		bullet.Position.Insert(prefab.Keyframe[prefab.Vec2]{
			Time:  demoFlight,
			Value: prefab.Vec2{X: dir.X * demoDistance, Y: dir.Y * demoDistance},
		})
	}
	return doc
}
