package lorehelper

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/TaleirOfDeynai/NAI-Lore-Helper.Version=...".
var Version = "0.1.0-dev"
