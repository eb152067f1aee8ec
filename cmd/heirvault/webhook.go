package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var addwebhook = cli.Command{
	Name:  "addwebhook",
	Usage: "add a webhook registered for some event",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "the endpoint where to notify the webhook",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "secret",
			Usage: "the eventual secret to authenticate requests",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "event",
			Usage: "the event for which the webhook gets notified, '*' for all",
			Value: "*",
		},
	},
	Action: addWebhookAction,
}

var removewebhook = cli.Command{
	Name:  "removewebhook",
	Usage: "remove a webhook by its id",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the webhook to remove",
		},
		&cli.StringFlag{
			Name:  "event",
			Usage: "the event the webhook was registered for",
			Value: "*",
		},
	},
	Action: removeWebhookAction,
}

func addWebhookAction(ctx *cli.Context) error {
	resp, err := sendRequest(
		http.MethodPost, "/v1/webhooks", map[string]interface{}{
			"event":    ctx.String("event"),
			"endpoint": ctx.String("endpoint"),
			"secret":   ctx.String("secret"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	if _, err := sendRequest(
		http.MethodDelete,
		"/v1/webhooks/"+ctx.String("id")+
			"?event="+url.QueryEscape(ctx.String("event")),
		nil,
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}
