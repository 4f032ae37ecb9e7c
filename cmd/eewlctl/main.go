// Command eewlctl is a diagnostic CLI for inspecting and exercising an
// eewl region without flashing firmware: point it at a regionset
// manifest and a backing device (or --dry-run for an in-memory one) to
// push values, peek at raw slots, dump a region's whole slot table, or
// wipe it.
//
// Wiring style (cobra command tree + viper/pflag config flag +
// fatih/color error reporting + gosuri/uitable table dump) follows
// JinVei-Laputa's pkg/utils/app/cmd.go and pkg/util/app/config.go.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	eewl "github.com/ramadhanafif/WL-AT24Cx"
	"github.com/ramadhanafif/WL-AT24Cx/device/filedev"
	"github.com/ramadhanafif/WL-AT24Cx/device/memory"
	"github.com/ramadhanafif/WL-AT24Cx/regionset"
)

var (
	manifestPath string
	regionName   string
	devicePath   string
	dryRun       bool
)

func main() {
	klog.InitFlags(nil)
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Printf("%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "eewlctl",
		Short: "inspect and exercise an eewl wear-leveling region",
	}
	flags := root.PersistentFlags()
	flags.StringVar(&manifestPath, "manifest", "", "path to a regionset manifest (YAML)")
	flags.StringVar(&regionName, "region", "", "name of the region within the manifest to operate on")
	flags.StringVar(&devicePath, "device", "", "path to the backing device file (filedev); ignored with --dry-run")
	flags.BoolVar(&dryRun, "dry-run", false, "use an in-memory device instead of --device")
	_ = viper.BindPFlag("manifest", flags.Lookup("manifest"))
	_ = viper.BindPFlag("device", flags.Lookup("device"))

	root.AddCommand(newPushCommand(), newPeekCommand(), newDumpCommand(), newWipeCommand())
	return root
}

// openRegion loads the manifest, resolves regionName's geometry, opens
// the backing device (memory for --dry-run, filedev otherwise), and
// returns an opened Engine plus a closer for callers that own a real
// file.
func openRegion() (*eewl.Engine[blob, *blob], func(), error) {
	if manifestPath == "" {
		return nil, nil, fmt.Errorf("--manifest is required")
	}
	m, err := regionset.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := m.Resolve()
	if err != nil {
		return nil, nil, err
	}

	var cfg *eewl.Config
	for i := range resolved {
		if resolved[i].Name == regionName {
			cfg = &resolved[i].Cfg
			break
		}
	}
	if cfg == nil {
		return nil, nil, fmt.Errorf("no region named %q in %s", regionName, manifestPath)
	}

	var dev eewl.Device
	closer := func() {}
	if dryRun || devicePath == "" {
		dev = memory.New(m.Device.SizeBytes)
	} else {
		fd, err := openOrCreateFiledev(devicePath, m.Device.SizeBytes)
		if err != nil {
			return nil, nil, err
		}
		dev = fd
		closer = func() { _ = fd.Close() }
	}

	eng, err := eewl.New[blob, *blob](dev, *cfg)
	if err != nil {
		closer()
		return nil, nil, err
	}
	if err := eng.Open(); err != nil {
		closer()
		return nil, nil, err
	}
	return eng, closer, nil
}

func openOrCreateFiledev(path string, size uint32) (*filedev.Device, error) {
	if _, err := os.Stat(path); err == nil {
		return filedev.Open(path)
	}
	return filedev.Create(path, size)
}

func newPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push <hex>",
		Short: "encode hex bytes into a slot payload and push it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode hex payload: %w", err)
			}
			if len(raw) > blobSize {
				return fmt.Errorf("payload is %d bytes, max is %d", len(raw), blobSize)
			}
			var b blob
			copy(b[:], raw)

			eng, closer, err := openRegion()
			if err != nil {
				return err
			}
			defer closer()

			if err := eng.Push(b); err != nil {
				return err
			}
			fmt.Printf("%v pushed %s\n", color.GreenString("==>"), hex.EncodeToString(b[:]))
			return nil
		},
	}
}

func newPeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "peek <slot>",
		Short: "print the raw record at a slot index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var idx uint32
			if _, err := fmt.Sscanf(args[0], "%d", &idx); err != nil {
				return fmt.Errorf("parse slot index: %w", err)
			}

			eng, closer, err := openRegion()
			if err != nil {
				return err
			}
			defer closer()

			rec, err := eng.Peek(idx)
			if err != nil {
				return err
			}
			printSlotTable([]slotRow{rowFromRecord(idx, rec)})
			return nil
		},
	}
}

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "print every slot in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closer, err := openRegion()
			if err != nil {
				return err
			}
			defer closer()

			m, err := regionset.Load(manifestPath)
			if err != nil {
				return err
			}
			resolved, err := m.Resolve()
			if err != nil {
				return err
			}
			var n uint32
			for _, r := range resolved {
				if r.Name == regionName {
					n = r.Cfg.SlotCount
					break
				}
			}

			rows := make([]slotRow, 0, n)
			for i := uint32(0); i < n; i++ {
				rec, err := eng.Peek(i)
				if err != nil {
					return err
				}
				rows = append(rows, rowFromRecord(i, rec))
			}
			printSlotTable(rows)

			last, err := eng.GetLast()
			if err != nil {
				return err
			}
			fmt.Printf("%v last committed: %s\n", color.GreenString("==>"), hex.EncodeToString(last[:]))
			return nil
		},
	}
}

func newWipeCommand() *cobra.Command {
	var wholeDevice bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "erase the region (or, with --device-wide, the whole device)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closer, err := openRegion()
			if err != nil {
				return err
			}
			defer closer()

			if wholeDevice {
				m, err := regionset.Load(manifestPath)
				if err != nil {
					return err
				}
				if err := eng.Wipe(m.Device.SizeBytes); err != nil {
					return err
				}
			} else if err := eng.WipeRegion(); err != nil {
				return err
			}
			fmt.Printf("%v wiped\n", color.GreenString("==>"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&wholeDevice, "device-wide", false, "wipe the entire device instead of just this region")
	return cmd
}

type slotRow struct {
	index uint32
	seq   uint32
	crc   byte
	blank bool
	hex   string
}

func rowFromRecord(i uint32, rec eewl.Record) slotRow {
	return slotRow{index: i, seq: rec.Seq, crc: rec.Crc, blank: rec.Blank, hex: hex.EncodeToString(rec.Payload)}
}

func printSlotTable(rows []slotRow) {
	table := uitable.New()
	table.Separator = "  "
	table.MaxColWidth = 40
	table.AddRow("SLOT", "SEQ", "CRC", "BLANK", "PAYLOAD")
	for _, r := range rows {
		table.AddRow(r.index, r.seq, fmt.Sprintf("0x%02x", r.crc), r.blank, r.hex)
	}
	fmt.Println(table)
}
