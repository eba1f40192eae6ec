package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lxoreader/internal/lxob"
	"lxoreader/internal/pkg"
	"lxoreader/internal/report"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the header, chunk histogram and point bounds of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger := pkg.LoggerFromContext(cmd.Context()).With(zap.String("file", args[0]))

			timer := a.metrics.NewTimer("decode")
			doc, err := lxob.Decode(buf, a.opts)
			timer.StopAndLog(logger, pointCount(doc), err)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), report.NewSummary(doc), a.output)
		},
	}
}

func pointCount(doc *lxob.Document) int {
	if doc == nil {
		return 0
	}
	return doc.PointCount()
}

func newChunksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file>",
		Short: "List every chunk with its file offset and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger := pkg.LoggerFromContext(cmd.Context()).With(zap.String("file", args[0]))

			timer := a.metrics.NewTimer("chunks")
			list, err := listChunks(buf, a.opts)
			timer.StopAndLog(logger, 0, err)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), list, a.output)
		},
	}
}

func listChunks(buf []byte, opts lxob.Options) (report.ChunkList, error) {
	if opts.RequireLxob {
		if err := lxob.CheckFormat(buf); err != nil {
			return nil, err
		}
	}
	return report.ListChunks(buf)
}

func newPointsCommand(a *app) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "points <file>",
		Short: "Print the PNTS point list, optionally filtered",
		Long: `Print the points of the PNTS chunk. --where takes a boolean expression
over x, y, z and index, for example: --where 'z > 0 && index < 100'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *report.Filter
			if where != "" {
				f, err := report.NewFilter(where)
				if err != nil {
					return err
				}
				filter = f
			}
			buf, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger := pkg.LoggerFromContext(cmd.Context()).With(zap.String("file", args[0]))

			timer := a.metrics.NewTimer("points")
			points, err := extractPoints(buf, a.opts)
			timer.StopAndLog(logger, len(points), err)
			if err != nil {
				return err
			}
			list, err := filter.Apply(points)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), list, a.output)
		},
	}
	cmd.Flags().StringVarP(&where, "where", "w", "", "过滤表达式，可用变量 x y z index")
	return cmd
}

// extractPoints 总是要求 LXOB 格式，不受 require_lxob 影响
func extractPoints(buf []byte, opts lxob.Options) ([]lxob.Point, error) {
	chunk, err := lxob.ExtractPoints(buf, opts.Locate)
	if err != nil {
		return nil, err
	}
	return chunk.Data, nil
}
