package assets

import "embed"

//go:embed banner.txt
var bannerFS embed.FS

// BannerString is printed once at startup.
var BannerString string

func init() {
	bytes, err := bannerFS.ReadFile("banner.txt")
	if err != nil {
		// the banner is embedded at build time, failing here means a broken build
		panic(err)
	}

	BannerString = string(bytes)
}
