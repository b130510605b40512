package rocketchat

import jsoniter "github.com/json-iterator/go"

// json is a drop-in replacement for encoding/json used across the package.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
