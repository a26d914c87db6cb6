package cmd

import (
	"fmt"
	"strings"

	"github.com/cascadia-snow/resortwatch/internal/images"
	"github.com/cascadia-snow/resortwatch/internal/providers"
	"github.com/cascadia-snow/resortwatch/internal/webcams"
	"github.com/spf13/cobra"
)

func newCamerasCmd() *cobra.Command {
	var resortKey string
	var catalogPath string
	var listResorts bool
	var resolve bool

	cmd := &cobra.Command{
		Use:   "cameras",
		Short: "List resorts and cameras, optionally resolving image URLs",
		Example: `  # List all resorts
  resortwatch cameras --list-resorts

  # List cameras for one resort
  resortwatch cameras --resort stevens_pass

  # Resolve current image references (hits the network for some providers)
  resortwatch cameras --resort stevens_pass --resolve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			if listResorts {
				for _, key := range cat.Keys() {
					resort, _ := cat.Resort(key)
					fmt.Printf("%-20s %s (%s, %d cameras)\n", key, resort.Name, resort.Region, len(resort.Cameras))
				}
				return nil
			}

			keys := cat.Keys()
			if resortKey != "" {
				if _, ok := cat.Resort(resortKey); !ok {
					return fmt.Errorf("unknown resort: %s", resortKey)
				}
				keys = []string{resortKey}
			}

			var downloader *webcams.Downloader
			if resolve {
				fetcher := images.NewFetcher()
				downloader = webcams.NewDownloader(cat, providers.NewRegistry(fetcher, images.NewFFmpeg()))
			}

			for _, key := range keys {
				resort, _ := cat.Resort(key)
				fmt.Printf("\n%s (%s)\n", resort.Name, key)

				if !resolve {
					for _, camera := range resort.Cameras {
						fmt.Printf("  %-30s provider=%-10s categories=%s\n",
							camera.Name, camera.Provider, strings.Join(camera.CategoryNames(), ","))
					}
					continue
				}

				infos, err := downloader.ResortImages(cmd.Context(), key)
				if err != nil {
					return err
				}
				for _, info := range infos {
					ref := info.URL
					if info.IsBase64 {
						ref = fmt.Sprintf("<inline base64, %d bytes>", len(info.URL))
					}
					expiry := "permanent"
					if info.ExpiryMinutes != nil {
						expiry = fmt.Sprintf("expires in %dm", *info.ExpiryMinutes)
					}
					fmt.Printf("  %-30s %s (%s)\n", info.Camera.Name, ref, expiry)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resortKey, "resort", "r", "", "Limit to this resort")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a resort catalog YAML (defaults to the built-in catalog)")
	cmd.Flags().BoolVar(&listResorts, "list-resorts", false, "List available resorts and exit")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Resolve current image references through each provider")

	return cmd
}
