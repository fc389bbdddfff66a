package label

// ExampleYAML is the starter configuration written by `labelcrew init`.
// It is also a complete, valid config.
const ExampleYAML = `# Label configuration for labelcrew.
label:
  name: Next Up Records
  owner: Jane Doe

distributor:
  name: koala_music

artists:
  - name: Alpha
    split: 0.8
    aliases: [ALPHA]
  - name: Beta
  - name: Gamma
    split: 0.6
    contract_status: signed

credentials:
  telegram: ${TELEGRAM_BOT_TOKEN}
  distributor: ${DISTRIBUTOR_API_KEY}
  postgresql: ${DATABASE_URL}
  storage: ${CONTRACT_STORAGE_TOKEN}
  hosting: ${HOSTING_API_KEY}
  github: ${GITHUB_TOKEN}

contracts:
  storage: yandex_disk
  default_split: 0.7
  currency: USD

hosting:
  provider: render

# Per-agent overrides. Identity fields of a role cannot be changed.
agents:
  director:
    model: opus
  release_pipe:
    enabled: true
`
