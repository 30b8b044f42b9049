package pushplus

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultAPI = "https://www.pushplus.plus/send/"

type PushPlus struct {
	Token string
	API   string
}

type pushPlusResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (p *PushPlus) Webhook(title string, content string) error {
	api := p.API
	if api == "" {
		api = DefaultAPI
	}

	rtn := &pushPlusResp{}
	resp, err := resty.New().SetTimeout(time.Second*10).R().SetResult(rtn).SetBody(map[string]string{
		"token":   p.Token,
		"title":   title,
		"content": content,
	}).ForceContentType("application/json").Post(api)
	if err != nil {
		return err
	}

	switch rtn.Code {
	case 0:
		return fmt.Errorf("[PushPlus] %s", resp.String())
	case 200:
		return nil
	default:
		return fmt.Errorf("[PushPlus] %s", rtn.Msg)
	}
}
