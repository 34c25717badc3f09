package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Create a config.yaml interactively.

You will be prompted for:
  - S3 endpoint URL, region, credentials and bucket
  - HTTP server port
  - Bearer token (leave empty to disable authentication)`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("output", "config.yaml", "path of the config file to write")
	rootCmd.AddCommand(initCmd)
}

// fileConfig mirrors the config schema with yaml tags for writing.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	S3 struct {
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
	} `yaml:"s3"`
	Auth struct {
		Token string `yaml:"token,omitempty"`
	} `yaml:"auth"`
}

func runInit(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(output); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("File '%s' already exists. Overwrite it", output),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	var cfg fileConfig

	endpointPrompt := promptui.Prompt{
		Label: "S3 endpoint URL",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("endpoint URL is required")
			}
			parsedURL, parseErr := url.Parse(input)
			if parseErr != nil {
				return fmt.Errorf("invalid URL: %w", parseErr)
			}
			if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
				return errors.New("URL must start with http:// or https://")
			}
			return nil
		},
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.S3.Endpoint = endpoint

	regionPrompt := promptui.Prompt{
		Label:   "S3 region",
		Default: "us-east-1",
	}
	if cfg.S3.Region, err = regionPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	accessKeyPrompt := promptui.Prompt{
		Label: "Access key",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("access key is required")
			}
			return nil
		},
	}
	if cfg.S3.AccessKey, err = accessKeyPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	secretKeyPrompt := promptui.Prompt{
		Label: "Secret key",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("secret key is required")
			}
			return nil
		},
	}
	if cfg.S3.SecretKey, err = secretKeyPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	bucketPrompt := promptui.Prompt{
		Label: "Bucket",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("bucket is required")
			}
			return nil
		},
	}
	if cfg.S3.Bucket, err = bucketPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "5000",
		Validate: func(input string) error {
			port, parseErr := strconv.Atoi(input)
			if parseErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	tokenPrompt := promptui.Prompt{
		Label: "Bearer token (empty disables auth)",
		Mask:  '*',
	}
	if cfg.Auth.Token, err = tokenPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s.\n", output)
	if cfg.Auth.Token == "" {
		fmt.Println("Warning: no token set, all endpoints will be public.")
	}

	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
