package infra

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// openccConfigs maps a target script onto the OpenCC conversion that reaches it.
var openccConfigs = map[string]string{
	"zh-cn": "t2s",
	"zh-tw": "s2t",
}

// ScriptConverter rewrites Chinese text into one script so whisper's mixed
// Traditional/Simplified output reads consistently.
type ScriptConverter struct {
	target string
	cc     *opencc.OpenCC
}

func NewScriptConverter(target string) (*ScriptConverter, error) {
	conf, ok := openccConfigs[target]
	if !ok {
		return nil, fmt.Errorf("script convert: unsupported target %q", target)
	}
	cc, err := opencc.New(conf)
	if err != nil {
		return nil, fmt.Errorf("script convert: load %s: %w", conf, err)
	}
	return &ScriptConverter{target: target, cc: cc}, nil
}

func (c *ScriptConverter) Convert(text string) (string, error) {
	out, err := c.cc.Convert(text)
	if err != nil {
		return "", fmt.Errorf("script convert %s: %w", c.target, err)
	}
	return out, nil
}
