package config

// CloudflareDNSProvider represents the Cloudflare DNS provider
const CloudflareDNSProvider = "cloudflare"

// SendGridEmailProvider represents the SendGrid email provider
const SendGridEmailProvider = "sendgrid"
