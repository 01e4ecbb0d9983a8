package version

const AppName = "blacklist"
