package prompt

// Failure-scenario reference tables, one per platform. These are static text,
// versioned with the prompt format; the model is instructed to pick scenarios
// from these tables only.

const vmTable = `### VM (Linux / Windows)
| # | Category | VM - Linux | VM - Windows |
|---|----------|------------|--------------|
| 1 | Component Failures | Loss of VM | Loss of VM |
| 2 | Component Failures | Loss of interfacing system | Loss of interfacing system |
| 3 | Component Failures | Loss of DNS | Loss of DNS |
| 4 | Component Failures | Loss of LDAP | Loss of LDAP |
| 5 | Component Failures | Application process terminated | Application process terminated |
| 6 | Component Failures | Application process hung | |
| 7 | Component Failures | Loss of DB connectivity | |
| 8 | Component Failures | Loss of MQ connectivity | |
| 9 | Component Failures | Loss of filesystem | |
| 10 | Component Failures | Filesystem corruption | |
| 11 | Component Failures | Kernel panic | |
| 12 | Stress Conditions | CPU starvation | CPU starvation |
| 13 | Stress Conditions | Memory starvation | Memory starvation |
| 14 | Stress Conditions | High I/O | High I/O |
| 15 | Stress Conditions | Filesystem full | Drive full |
| 16 | Network Conditions | Network latency (ingress/egress) | |
| 17 | Network Conditions | Packet loss | |
| 18 | Network Conditions | Packet corruption | |
| 19 | Network Conditions | Packet duplication | |
| 20 | User Related | User id locked | User id locked |
| 21 | User Related | User id expired | Password change |
| 22 | Internal Failures | Time drift | Time drift |
| 23 | Internal Failures | Certificate expiry | |
| 24 | Batch Related | Zero byte file | |
| 25 | Batch Related | File format changed | |
| 26 | Batch Related | File binary corrupt | |
| 27 | Batch Related | Duplicate job run (idempotency) | |
| 28 | Batch Related | File text removal (header/trailer) | |`

const kubernetesTable = `### Kubernetes / OpenShift
| Category | Scenario |
|----------|----------|
| Component Failures | Loss of pods |
| Component Failures | Remove service endpoint |
| Component Failures | Cordon node |
| Component Failures | Delete node |
| Component Failures | Delete service |
| Component Failures | Delete replica set |
| Component Failures | Remove stateful set |
| Stress Conditions | High CPU on pods |
| Stress Conditions | High memory on pods |
| Stress Conditions | High I/O on pods |
| Stress Conditions | Filesystem full on pods |
| Stress Conditions | Scale down deployments/pods |
| Stress Conditions | Scale down replica sets |
| Stress Conditions | Scale down stateful sets |
| Network Conditions | Block traffic (all) - namespace |
| Network Conditions | Block traffic (target) - namespace |
| Network Conditions | Remove network policy |
| Network Conditions | Block traffic (all) - pod |
| Network Conditions | Block traffic (target) - pod |`

const awsTable = `### AWS
| Resource Type | Category | Scenario |
|---------------|----------|----------|
| EC2 | Component Failures | Detach random volume |
| EC2 | Component Failures | Restart instances |
| EC2 | Component Failures | Stop instance/instances |
| EC2 | Component Failures | Terminate instance/instances |
| EC2 | Component Failures | Loss of connectivity to interfacing system |
| EC2 | Component Failures | Terminate application process |
| EC2 | Component Failures | Hang application process |
| EC2 | Stress Conditions | High CPU |
| EC2 | Stress Conditions | High memory |
| EC2 | Stress Conditions | High I/O |
| EC2 | Stress Conditions | Disk full |
| EC2 | Network Conditions | Latency (ingress/egress) |
| EC2 | Network Conditions | Packet loss (ingress/egress) |
| EC2 | Network Conditions | Packet corruption (ingress/egress) |
| EC2 | Network Conditions | Packet duplication (ingress/egress) |
| EC2 | Internal Failures | Lock user |
| EC2 | Internal Failures | Expire user |
| EC2 | Internal Failures | Time drift |
| EC2 | Internal Failures | Certificate expiry |
| EKS | Component Failures | Delete cluster |
| EKS | Component Failures | Loss of pods |
| EKS | Component Failures | Remove service endpoint |
| EKS | Component Failures | Cordon node |
| EKS | Component Failures | Delete node |
| EKS | Component Failures | Delete service |
| EKS | Component Failures | Delete replica set |
| EKS | Component Failures | Remove stateful set |
| EKS | Stress Conditions | High CPU on pods |
| EKS | Stress Conditions | High memory on pods |
| EKS | Stress Conditions | High I/O on pods |
| EKS | Stress Conditions | Filesystem full on pods |
| EKS | Stress Conditions | Scale down pods |
| EKS | Stress Conditions | Scale down replica sets |
| EKS | Stress Conditions | Scale down stateful sets |
| EKS | Network Conditions | Block traffic (all) - namespace |
| EKS | Network Conditions | Block traffic (target) - namespace |
| EKS | Network Conditions | Remove network policy |
| EKS | Network Conditions | Block traffic (all) - pod |
| EKS | Network Conditions | Block traffic (target) - pod |
| RDS | Component Failures | Delete DB cluster |
| RDS | Component Failures | Delete DB cluster endpoint |
| RDS | Component Failures | Delete DB instance |
| RDS | Component Failures | Failover DB cluster |
| RDS | Component Failures | Reboot DB instance |
| RDS | Component Failures | Stop DB cluster |
| RDS | Component Failures | Stop DB instance |
| RDS | Stress Conditions | Block tables |
| Lambda | Component Failures | Delete event source mapping |
| Lambda | Component Failures | Delete function concurrency |
| Lambda | Component Failures | Toggle event source mapping |
| Lambda | Component Failures | Memory failure |
| Lambda | Stress Conditions | Change (put) function timeout |
| Lambda | Stress Conditions | Change (put) function memory size |
| ASG | Component Failures | Detach random volume |
| ASG | Component Failures | Detach random instances |
| ASG | Component Failures | Suspend processes |
| ASG | Component Failures | Terminate random instances |
| ASG | Network Conditions | Change subnets |
| S3 | Component Failures | Delete objects |
| S3 | Component Failures | Toggle versions |
| DynamoDB | Stress Conditions | Read/write capacity |
| ECS | Component Failures | Delete cluster |
| ECS | Component Failures | Delete service |
| ECS | Component Failures | Deregister container instance |
| ECS | Component Failures | Stop random tasks |
| ECS | Component Failures | Stop task |
| ECS | Component Failures | Untag resource |
| ECS | Stress Conditions | Reduce number of tasks |
| Network | Component Failures | Disassociate VPC from zone |
| ElastiCache | Component Failures | Delete cache clusters |
| ElastiCache | Component Failures | Delete replication groups |
| ElastiCache | Component Failures | Reboot cache clusters |
| ElastiCache | Component Failures | Test failover |
| ELBv2 | Component Failures | Delete load balancer |
| ELBv2 | Component Failures | Deregister target |
| EMR | Component Failures | Modify cluster |
| EMR | Component Failures | Modify instance fleet |
| EMR | Component Failures | Modify instance groups instance count |
| EMR | Component Failures | Modify instance groups shrink policy |
| IAM | Component Failures | Detach role policy |`

const azureTable = `### Azure
| Resource Type | Category | Scenario |
|---------------|----------|----------|
| VM | Component Failures | Delete VM |
| VM | Component Failures | Restart VM |
| VM | Component Failures | Terminate application process |
| VM | Component Failures | Hang application process |
| VM | Stress Conditions | High CPU |
| VM | Stress Conditions | High memory |
| VM | Stress Conditions | High I/O |
| VM | Stress Conditions | Disk full |
| VM | Network Conditions | Network latency (ingress/egress) |
| VM | Network Conditions | Packet loss (ingress/egress) |
| VM | Network Conditions | Packet corruption (ingress/egress) |
| VM | Network Conditions | Packet duplication (ingress/egress) |
| VM | Internal Failures | Lock user |
| VM | Internal Failures | Expire user |
| VM | Internal Failures | Time drift |
| VM | Internal Failures | Certificate expiry |
| VMSS | Component Failures | Deallocate VMSS |
| VMSS | Component Failures | Restart VMSS |
| VMSS | Component Failures | Loss of VMSS |
| VMSS | Stress Conditions | High I/O |
| VMSS | Stress Conditions | High CPU on VMSS instance |
| VMSS | Network Conditions | Network latency |
| WebApp | Component Failures | Delete webapp |
| WebApp | Component Failures | Restart webapp |
| WebApp | Component Failures | Stop webapp |
| AKS | Component Failures | Delete node |
| AKS | Component Failures | Restart node |
| AKS | Component Failures | Stop node |
| AKS | Component Failures | Loss of pods |
| AKS | Component Failures | Remove service endpoint |
| AKS | Component Failures | Cordon node |
| AKS | Component Failures | Delete service |
| AKS | Component Failures | Delete replica set |
| AKS | Component Failures | Remove stateful set |
| AKS | Stress Conditions | High CPU on pods |
| AKS | Stress Conditions | High memory on pods |
| AKS | Stress Conditions | High I/O on pods |
| AKS | Stress Conditions | Filesystem full on pods |
| AKS | Stress Conditions | Scale down pods |
| AKS | Stress Conditions | Scale down replica sets |
| AKS | Stress Conditions | Scale down stateful sets |
| AKS | Network Conditions | Block traffic (all) - namespace |
| AKS | Network Conditions | Block traffic (target) - namespace |
| AKS | Network Conditions | Remove network policy |
| AKS | Network Conditions | Block traffic (all) - pod |
| AKS | Network Conditions | Block traffic (target) - pod |`

const gcpTable = `### GCP
| Resource Type | Scenario |
|---------------|----------|
| Compute Engine | Terminate VM |
| Compute Engine | Detach storage |
| Compute Engine | Detach random storage |
| Compute Engine | Stop VM |
| Compute Engine | Restart VM |
| Compute Engine | Loss of interfacing system |
| Compute Engine | Loss of DNS |
| Compute Engine | Loss of LDAP |
| Compute Engine | Application process terminated |
| Compute Engine | Application process hung |
| Compute Engine | Loss of DB connectivity |
| Compute Engine | Loss of MQ connectivity |
| Compute Engine | Loss of filesystem |
| Compute Engine | Filesystem corruption |
| Compute Engine | Kernel panic |
| Compute Engine | CPU starvation |
| Compute Engine | Memory starvation |
| Compute Engine | High I/O |
| Compute Engine | Filesystem full |
| Compute Engine | Network latency (ingress/egress) |
| Compute Engine | Packet loss |
| Compute Engine | Packet corruption |
| Compute Engine | Packet duplication |
| Compute Engine | User id locked |
| Compute Engine | User id expired |
| Compute Engine | Time drift |
| Compute Engine | Certificate expiry |
| Compute Engine | Zero byte file |
| Compute Engine | File format changed |
| Compute Engine | File binary corrupt |
| Compute Engine | Duplicate job run (idempotency) |
| Compute Engine | File text removal (header/trailer) |
| Cloud Storage | Delete object |
| Cloud Storage | Toggle version |
| Cloud SQL | Stop SQL |
| Cloud SQL | Terminate SQL |
| Cloud SQL | Reboot SQL |
| Cloud SQL | Enable replication |
| Cloud SQL | Failover |
| GKE | Namespace network block (full) |
| GKE | Namespace network block (on target) |
| GKE | Remove/reinstate network policy |
| GKE | Cordon node |
| GKE | Delete node |
| GKE | Filesystem full on pods |
| GKE | High CPU on pod |
| GKE | High I/O on pod |
| GKE | High memory on pod |
| GKE | Loss of pods |
| GKE | Pod network block (full) |
| GKE | Pod network block (on target) |
| GKE | Scale down pods |
| GKE | Delete replica set |
| GKE | Scale down replica set |
| GKE | Delete service |
| GKE | Remove/reinstate stateful set |
| GKE | Scale down stateful set |`

// referenceTables is the full fixed corpus appended to every prompt.
const referenceTables = `## FAILURE REFERENCE TABLES (Use Only These)

` + vmTable + `

` + kubernetesTable + `

` + awsTable + `

` + azureTable + `

` + gcpTable
